package routes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/http/middleware"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/notify"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/jwt"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/password"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/storage"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminPassword = "admin-pass-123"

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

type discardQueue struct{}

func (discardQueue) Enqueue(context.Context, notify.Message) error { return nil }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type server struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "routes-secret", AccessTokenMins: 30},
		Uploads: config.UploadConfig{Dir: t.TempDir(), URLPrefix: "/uploads"},
	}
	store, err := storage.New(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	notifier := services.NewNotificationService(discardQueue{})

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, db, cfg, Dependencies{Notifier: notifier, Store: store})

	userService := services.NewUserService(repositories.NewUserRepository(db), repositories.NewCauseRepository(db), notifier)
	if _, err := userService.CreateAdmin(context.Background(), "root", "root@digibox.lk", adminPassword); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	return &server{t: t, app: app, db: db, cfg: cfg}
}

func (s *server) do(req *http.Request, token string) (int, *envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		s.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	body, _ := io.ReadAll(resp.Body)

	var env envelope
	if len(body) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if err := json.Unmarshal(body, &env); err != nil {
			s.t.Fatalf("decode %s: %v", body, err)
		}
	}
	return resp.StatusCode, &env
}

func (s *server) json(method, path, token string, body interface{}) (int, *envelope) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return s.do(req, token)
}

// tokenFor signs a token for a stored user without going through login
func (s *server) tokenFor(username string) string {
	s.t.Helper()
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		s.t.Fatalf("load %s: %v", username, err)
	}
	tok, _, err := jwt.GenerateAccessToken(jwt.Subject{
		UserID:       u.ID,
		Username:     u.Username,
		Role:         u.Role,
		DistrictCode: u.DistrictCode,
		DivisionCode: u.DivisionCode,
		AreaCode:     u.AreaCode,
	}, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		s.t.Fatalf("GenerateAccessToken: %v", err)
	}
	return tok
}

func (s *server) createCause(token string, h domain.Hierarchy, amount string) (int, *envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":             "Clean water tank",
		"description":       "A water tank for the village school",
		"required_amount":   amount,
		"beneficiary_name":  "Sunil Fernando",
		"beneficiary_nic":   "781234567V",
		"beneficiary_phone": "0761234567",
		"bank_name":         "Sampath Bank",
		"account_number":    "1122334455",
		"account_holder":    "Sunil Fernando",
		"district_code":     h.DistrictCode,
		"division_code":     h.DivisionCode,
		"area_code":         h.AreaCode,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			s.t.Fatalf("WriteField: %v", err)
		}
	}
	ph := make(textproto.MIMEHeader)
	ph.Set("Content-Disposition", `form-data; name="evidence"; filename="evidence.pdf"`)
	ph.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(ph)
	if err != nil {
		s.t.Fatalf("CreatePart: %v", err)
	}
	part.Write([]byte("%PDF-1.4\n%%EOF\n"))
	w.Close()

	req := httptest.NewRequest("POST", "/api/v1/cause/create", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return s.do(req, token)
}

func signature(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 30, 10))
	for x := 0; x < 30; x++ {
		img.Set(x, 4, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decode(t *testing.T, env *envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func expect(t *testing.T, step string, status, want int, env *envelope) {
	t.Helper()
	if status != want {
		t.Fatalf("%s: status = %d, want %d (error %q)", step, status, want, env.Error)
	}
}

func TestDonationWorkflowOverHTTP(t *testing.T) {
	s := newServer(t)
	h := testutil.Colombo

	// Admin logs in with the seeded account
	status, env := s.json("POST", "/auth/login", "", map[string]string{"email": "root@digibox.lk", "password": adminPassword})
	expect(t, "admin login", status, fiber.StatusOK, env)
	var login services.AuthResponse
	decode(t, env, &login)
	if login.AccessToken == "" || login.User.Role != "admin" {
		t.Fatalf("login = %+v", login)
	}
	admin := login.AccessToken

	// Admin provisions the officers for the area
	status, env = s.json("POST", "/admin/add-gs", admin, map[string]string{
		"username": "gs_kirulapone", "email": "gs@digibox.lk",
		"district_code": h.DistrictCode, "district_name": h.DistrictName,
		"division_code": h.DivisionCode, "division_name": h.DivisionName,
		"area_code": h.AreaCode, "area_name": h.AreaName,
	})
	expect(t, "add gs", status, fiber.StatusCreated, env)
	status, env = s.json("POST", "/admin/add-ds", admin, map[string]string{
		"username": "ds_thimbirigasyaya", "email": "ds@digibox.lk",
		"district_code": h.DistrictCode, "district_name": h.DistrictName,
		"division_code": h.DivisionCode, "division_name": h.DivisionName,
	})
	expect(t, "add ds", status, fiber.StatusCreated, env)

	// Creator and donor sign up
	for _, u := range []map[string]string{
		{"username": "creator1", "email": "creator1@example.com", "password": "creator-pass", "role": "creator"},
		{"username": "donor1", "email": "donor1@example.com", "password": "donor-pass1", "role": "donor"},
	} {
		status, env = s.json("POST", "/auth/signup", "", u)
		expect(t, "signup "+u["role"], status, fiber.StatusCreated, env)
	}
	creator, donor := s.tokenFor("creator1"), s.tokenFor("donor1")
	gs, ds := s.tokenFor("gs_kirulapone"), s.tokenFor("ds_thimbirigasyaya")

	// Creator submits a cause
	status, env = s.createCause(creator, h, "1000")
	expect(t, "create cause", status, fiber.StatusCreated, env)
	var cause models.CauseResponse
	decode(t, env, &cause)
	if cause.Stage != "pending_admin" || cause.AreaName != h.AreaName {
		t.Fatalf("created cause = %+v", cause)
	}
	id := cause.ID

	// Donors cannot see it yet
	status, env = s.json("GET", fmt.Sprintf("/donor/causes/%d", id), donor, nil)
	expect(t, "unpublished cause", status, fiber.StatusNotFound, env)

	// Admin gate
	status, env = s.json("PUT", fmt.Sprintf("/admin/causes/%d/admin-action", id), admin, map[string]string{"action": "approve"})
	expect(t, "admin approve", status, fiber.StatusOK, env)
	decode(t, env, &cause)
	if cause.Stage != "pending_gs" {
		t.Fatalf("stage after admin = %s", cause.Stage)
	}

	// GS gate
	status, env = s.json("GET", "/gs/pending-causes", gs, nil)
	expect(t, "gs pending", status, fiber.StatusOK, env)
	var pending struct {
		Data []models.CauseResponse `json:"data"`
	}
	decode(t, env, &pending)
	if len(pending.Data) != 1 || pending.Data[0].ID != id {
		t.Fatalf("gs pending = %+v", pending.Data)
	}

	status, env = s.json("PUT", fmt.Sprintf("/gs/approve/%d", id), gs, map[string]string{"remarks": "Visited the site", "signature": signature(t)})
	expect(t, "gs approve", status, fiber.StatusOK, env)
	decode(t, env, &cause)
	if cause.Stage != "pending_ds" {
		t.Fatalf("stage after gs = %s", cause.Stage)
	}

	// DS gate, then a repeated approval is refused
	status, env = s.json("PUT", fmt.Sprintf("/ds/approve/%d", id), ds, nil)
	expect(t, "ds approve", status, fiber.StatusOK, env)
	status, env = s.json("PUT", fmt.Sprintf("/ds/approve/%d", id), ds, nil)
	expect(t, "ds approve again", status, fiber.StatusConflict, env)

	// Publish
	status, env = s.json("PUT", fmt.Sprintf("/admin/publish/%d", id), admin, nil)
	expect(t, "publish", status, fiber.StatusOK, env)

	// Donor funds it in two steps, after which it is closed
	status, env = s.json("POST", fmt.Sprintf("/donor/donate/%d", id), donor, map[string]interface{}{"amount": 400, "payment_method": "Card"})
	expect(t, "donate 400", status, fiber.StatusCreated, env)
	status, env = s.json("POST", fmt.Sprintf("/donor/donate/%d", id), donor, map[string]interface{}{"amount": 600, "payment_method": "Bank Transfer"})
	expect(t, "donate rest", status, fiber.StatusCreated, env)
	var receipt services.Receipt
	decode(t, env, &receipt)
	if !receipt.CauseComplete || !strings.HasPrefix(receipt.TransactionID, "TXN-") {
		t.Fatalf("receipt = %+v", receipt)
	}
	status, env = s.json("POST", fmt.Sprintf("/donor/donate/%d", id), donor, map[string]interface{}{"amount": 50, "payment_method": "Card"})
	expect(t, "donate after completion", status, fiber.StatusConflict, env)
	status, env = s.json("POST", fmt.Sprintf("/donor/donate/%d", id), donor, map[string]interface{}{"amount": 50, "payment_method": "Cash"})
	expect(t, "unknown payment method", status, fiber.StatusBadRequest, env)

	status, env = s.json("GET", "/donor/history", donor, nil)
	expect(t, "history", status, fiber.StatusOK, env)
	var history services.DonorHistory
	decode(t, env, &history)
	if len(history.Donations) != 2 || history.Total != 1000 {
		t.Fatalf("history = %+v", history)
	}

	// The audit trail holds every gate
	status, env = s.json("GET", fmt.Sprintf("/admin/causes/%d/history", id), admin, nil)
	expect(t, "cause history", status, fiber.StatusOK, env)
	var trail []models.CauseHistory
	decode(t, env, &trail)
	if len(trail) != 6 {
		t.Errorf("history entries = %d, want 6", len(trail))
	}
}

func TestRouteAccessControl(t *testing.T) {
	s := newServer(t)
	admin := s.tokenFor("root")
	testutil.CreateUser(t, s.db, "donor2", domain.RoleDonor, domain.Hierarchy{})
	testutil.CreateUser(t, s.db, "creator2", domain.RoleCreator, domain.Hierarchy{})
	donor, creator := s.tokenFor("donor2"), s.tokenFor("creator2")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"no token", "GET", "/admin/users", "", fiber.StatusUnauthorized},
		{"donor on admin", "GET", "/admin/users", donor, fiber.StatusForbidden},
		{"creator on donor", "GET", "/donor/causes", creator, fiber.StatusForbidden},
		{"donor on gs", "GET", "/gs/pending-causes", donor, fiber.StatusForbidden},
		{"admin on users", "GET", "/admin/users", admin, fiber.StatusOK},
		{"admin dashboard", "GET", "/admin/causes/admin-dashboard", admin, fiber.StatusOK},
		{"creator dashboard", "GET", "/cause/dashboard", creator, fiber.StatusOK},
		{"areas for anyone signed in", "GET", "/hierarchy/areas", donor, fiber.StatusOK},
		{"bad id", "GET", "/admin/causes/abc", admin, fiber.StatusBadRequest},
		{"missing cause", "GET", "/admin/causes/999", admin, fiber.StatusNotFound},
		{"me", "GET", "/auth/me", creator, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.json(tt.method, tt.path, tt.token, nil)
			if status != tt.status {
				t.Errorf("status = %d, want %d (error %q)", status, tt.status, env.Error)
			}
		})
	}
}

func TestSignupRejectsOfficerRoles(t *testing.T) {
	s := newServer(t)

	for _, role := range []string{"admin", "gs", "ds"} {
		status, env := s.json("POST", "/auth/signup", "", map[string]string{
			"username": "x_" + role, "email": role + "@example.com", "password": "long-enough", "role": role,
		})
		if status != fiber.StatusForbidden && status != fiber.StatusBadRequest {
			t.Errorf("signup as %s: status = %d (error %q)", role, status, env.Error)
		}
	}
}

func TestHealthRoutes(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/", "/health"} {
		resp, err := s.app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		// No global database is configured in tests
		if path == "/" && resp.StatusCode != fiber.StatusOK {
			t.Errorf("GET / = %d", resp.StatusCode)
		}
		if path == "/health" && resp.StatusCode != fiber.StatusServiceUnavailable {
			t.Errorf("GET /health = %d", resp.StatusCode)
		}
	}
}
