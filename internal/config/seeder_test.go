package config

import (
	"context"
	"errors"
	"testing"
)

type fakeAdmins struct {
	exists  bool
	err     error
	created []string
}

func (f *fakeAdmins) HasAdmin(context.Context) (bool, error) {
	return f.exists, f.err
}

func (f *fakeAdmins) CreateAdmin(_ context.Context, username, email, password string) error {
	f.created = append(f.created, username+"|"+email+"|"+password)
	return nil
}

func TestSeeder_AdminUser(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		pass    string
		exists  bool
		err     error
		created string
	}{
		{name: "dev default password", mode: "dev", created: "admin|admin@digibox.lk|" + devAdminPassword},
		{name: "configured password", mode: "prod", pass: "s3cret-pass", created: "admin|admin@digibox.lk|s3cret-pass"},
		{name: "prod without password", mode: "prod"},
		{name: "admin already present", mode: "dev", exists: true},
		{name: "lookup failure", mode: "dev", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admins := &fakeAdmins{exists: tt.exists, err: tt.err}
			cfg := &Config{
				AppMode: tt.mode,
				Admin:   AdminSeedConfig{Username: "admin", Email: "admin@digibox.lk", Password: tt.pass},
			}

			if err := NewSeeder(admins, cfg).Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}

			switch {
			case tt.created == "" && len(admins.created) != 0:
				t.Errorf("created %v, want none", admins.created)
			case tt.created != "" && (len(admins.created) != 1 || admins.created[0] != tt.created):
				t.Errorf("created %v, want [%s]", admins.created, tt.created)
			}
		})
	}
}
