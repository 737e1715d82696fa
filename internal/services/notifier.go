package services

import (
	"context"
	"fmt"

	"jobboard/internal/models"
	"jobboard/internal/storage"
)

// StatusChangeNotifier is called inside the transaction that creates an
// application or changes its status. Returning an error rolls the change back.
type StatusChangeNotifier interface {
	ApplicationSubmitted(ctx context.Context, repos storage.Repositories, app *models.Application) error
	StatusChanged(ctx context.Context, repos storage.Repositories, app *models.Application, previous models.ApplicationStatus) error
}

// InboxNotifier stores notifications for the applicant to poll.
type InboxNotifier struct{}

// NewInboxNotifier creates the default notifier.
func NewInboxNotifier() *InboxNotifier {
	return &InboxNotifier{}
}

var _ StatusChangeNotifier = (*InboxNotifier)(nil)

func (n *InboxNotifier) ApplicationSubmitted(ctx context.Context, repos storage.Repositories, app *models.Application) error {
	return n.notify(ctx, repos, app, SubmittedMessage(app.JobTitle, app.JobCompanyName))
}

func (n *InboxNotifier) StatusChanged(ctx context.Context, repos storage.Repositories, app *models.Application, previous models.ApplicationStatus) error {
	return n.notify(ctx, repos, app, StatusMessage(app.Status, app.JobTitle))
}

func (n *InboxNotifier) notify(ctx context.Context, repos storage.Repositories, app *models.Application, message string) error {
	_, err := repos.Notifications().Create(ctx, &models.Notification{
		UserID:        app.UserID,
		ApplicationID: app.ID,
		Message:       message,
	})
	if err != nil {
		return MapRepoError(err, "creating notification")
	}
	return nil
}

// SubmittedMessage confirms a new application.
func SubmittedMessage(jobTitle, companyName string) string {
	return fmt.Sprintf("Your application for %s at %s has been submitted successfully.", jobTitle, companyName)
}

// StatusMessage is the text sent when an application moves to status.
// "new" deliberately carries no job details.
func StatusMessage(status models.ApplicationStatus, jobTitle string) string {
	switch status {
	case models.ApplicationStatusReviewing:
		return fmt.Sprintf("Your application for %s is now being reviewed.", jobTitle)
	case models.ApplicationStatusInterviewScheduled:
		return fmt.Sprintf("Congratulations! An interview has been scheduled for %s.", jobTitle)
	case models.ApplicationStatusRejected:
		return fmt.Sprintf("Thank you for your interest in %s. Unfortunately, we have decided not to move forward with your application.", jobTitle)
	default:
		return "Your application status has been updated."
	}
}
