package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/notify"
)

// NotificationService turns workflow events into email messages and puts
// them on the notification queue. Nothing here ever fails the caller:
// enqueue errors are logged and dropped.
type NotificationService struct {
	queue notify.Queue
}

// NewNotificationService creates a new notification service
func NewNotificationService(queue notify.Queue) *NotificationService {
	return &NotificationService{queue: queue}
}

func (s *NotificationService) enqueue(ctx context.Context, msg notify.Message) {
	if s == nil || s.queue == nil {
		return
	}
	// The request context may be cancelled as soon as the handler returns
	ctx = context.WithoutCancel(ctx)
	if err := s.queue.Enqueue(ctx, msg); err != nil {
		log.Printf("⚠️ Notification %q to %v not queued: %v", msg.Subject, msg.To, err)
	}
}

// NotifyWelcome greets a self-registered user
func (s *NotificationService) NotifyWelcome(ctx context.Context, user *models.User) {
	s.enqueue(ctx, notify.Message{
		To:      []string{user.Email},
		Subject: "Welcome to DigiBox",
		Text: fmt.Sprintf("Hello %s,\n\nYour %s account is ready. You can now sign in with %s.\n\nDigiBox",
			user.Username, user.Role, user.Email),
	})
}

// NotifyOfficerCredentials sends an admin-created officer their temporary password
func (s *NotificationService) NotifyOfficerCredentials(ctx context.Context, user *models.User, tempPassword string) {
	s.enqueue(ctx, notify.Message{
		To:      []string{user.Email},
		Subject: "Your DigiBox officer account",
		Text: fmt.Sprintf("Hello %s,\n\nAn administrator created a %s officer account for you.\n\n"+
			"Email: %s\nTemporary password: %s\n\nYou must change this password after your first sign in.\n\nDigiBox",
			user.Username, user.Role, user.Email, tempPassword),
	})
}

// NotifyCauseSubmitted tells every admin a new cause is waiting for review
func (s *NotificationService) NotifyCauseSubmitted(ctx context.Context, cause *models.Cause, admins []*models.User) {
	s.enqueue(ctx, notify.Message{
		To:      emails(admins),
		Subject: fmt.Sprintf("New cause #%d awaiting review", cause.ID),
		Text: fmt.Sprintf("A new cause \"%s\" (LKR %.2f) was submitted for %s, %s and is waiting for admin review.",
			cause.Title, cause.RequiredAmount, cause.AreaName, cause.DivisionName),
	})
}

// NotifyOfficerAssigned tells a GS or DS officer a cause now waits on them
func (s *NotificationService) NotifyOfficerAssigned(ctx context.Context, cause *models.Cause, officer *models.User, gate string) {
	s.enqueue(ctx, notify.Message{
		To:      []string{officer.Email},
		Subject: fmt.Sprintf("Cause #%d needs your %s verification", cause.ID, gate),
		Text: fmt.Sprintf("Hello %s,\n\nThe cause \"%s\" for beneficiary %s (%s, %s) has been forwarded to you for verification.\n\nPlease sign in to DigiBox to review it.",
			officer.Username, cause.Title, cause.BeneficiaryName, cause.AreaName, cause.DivisionName),
	})
}

// NotifyCauseRejected tells the creator their cause was rejected and copies every admin
func (s *NotificationService) NotifyCauseRejected(ctx context.Context, cause *models.Cause, creator *models.User, admins []*models.User, gate, reason string) {
	if creator != nil {
		text := fmt.Sprintf("Hello %s,\n\nYour cause \"%s\" was rejected at the %s verification stage.\n\nReason: %s\n\nDigiBox",
			creator.Username, cause.Title, gate, reason)
		htmlBody := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your cause <strong>%s</strong> was rejected at the <strong>%s</strong> verification stage.</p>
<p><strong>Reason:</strong> %s</p>
<p>DigiBox</p>`,
			html.EscapeString(creator.Username), html.EscapeString(cause.Title), html.EscapeString(gate), html.EscapeString(reason))

		s.enqueue(ctx, notify.Message{
			To:      []string{creator.Email},
			Subject: fmt.Sprintf("Cause #%d rejected", cause.ID),
			Text:    text,
			HTML:    htmlBody,
		})
	}

	if len(admins) > 0 {
		s.enqueue(ctx, notify.Message{
			To:      emails(admins),
			Subject: fmt.Sprintf("Cause #%d rejected at %s stage", cause.ID, gate),
			Text:    fmt.Sprintf("Cause \"%s\" was rejected at the %s stage.\nReason: %s", cause.Title, gate, reason),
		})
	}
}

// NotifyCauseApproved tells the creator the DS officer gave final approval
func (s *NotificationService) NotifyCauseApproved(ctx context.Context, cause *models.Cause, creator *models.User) {
	s.enqueue(ctx, notify.Message{
		To:      []string{creator.Email},
		Subject: fmt.Sprintf("Cause #%d approved", cause.ID),
		Text: fmt.Sprintf("Hello %s,\n\nYour cause \"%s\" passed every verification stage. It will be visible to donors once an administrator publishes it.\n\nDigiBox",
			creator.Username, cause.Title),
	})
}

// NotifyCausePublished tells the creator donors can now see the cause
func (s *NotificationService) NotifyCausePublished(ctx context.Context, cause *models.Cause, creator *models.User) {
	s.enqueue(ctx, notify.Message{
		To:      []string{creator.Email},
		Subject: fmt.Sprintf("Cause #%d is live", cause.ID),
		Text:    fmt.Sprintf("Hello %s,\n\nYour cause \"%s\" is now published and open for donations.\n\nDigiBox", creator.Username, cause.Title),
	})
}

// NotifyDonationReceipt sends the donor their receipt
func (s *NotificationService) NotifyDonationReceipt(ctx context.Context, donor *models.User, receipt *Receipt) {
	s.enqueue(ctx, notify.Message{
		To:      []string{donor.Email},
		Subject: "Thank you for your donation",
		Text: fmt.Sprintf("Hello %s,\n\nThank you for supporting \"%s\".\n\nTransaction: %s\nAmount: LKR %.2f\nDate: %s\n\nDigiBox",
			donor.Username, receipt.CauseTitle, receipt.TransactionID, receipt.Amount, receipt.Date.Format(time.RFC1123)),
	})
}

// NotifyCauseCompleted tells the creator the target was reached
func (s *NotificationService) NotifyCauseCompleted(ctx context.Context, cause *models.Cause, creator *models.User) {
	s.enqueue(ctx, notify.Message{
		To:      []string{creator.Email},
		Subject: fmt.Sprintf("Cause #%d reached its goal", cause.ID),
		Text: fmt.Sprintf("Hello %s,\n\n\"%s\" raised LKR %.2f from %d donors and is now complete.\n\nDigiBox",
			creator.Username, cause.Title, cause.FundsRaised, cause.DonorsCount),
	})
}

// NotifyPendingReminder reminds an officer about causes waiting on them
func (s *NotificationService) NotifyPendingReminder(ctx context.Context, officer *models.User, count int64, days int) {
	s.enqueue(ctx, notify.Message{
		To:      []string{officer.Email},
		Subject: fmt.Sprintf("%d causes are waiting for your verification", count),
		Text: fmt.Sprintf("Hello %s,\n\n%d causes assigned to you have been waiting for more than %d days. Please sign in to DigiBox to review them.",
			officer.Username, count, days),
	})
}

func emails(users []*models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email)
	}
	return out
}
