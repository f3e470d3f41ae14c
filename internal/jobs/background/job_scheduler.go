package background

import (
	"context"
	"log"
	"time"

	"slotify/internal/repositories"
	"slotify/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance jobs: the license expiry sweep
// and the notification retry drain.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	partnerRepo     repositories.PartnerRepository
	notificationSvc services.NotificationService
}

func NewJobScheduler(partnerRepo repositories.PartnerRepository, notificationSvc services.NotificationService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		partnerRepo:     partnerRepo,
		notificationSvc: notificationSvc,
	}

	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// The license guard already expires lapsed licenses at request time; the
	// sweep converges partners that receive no traffic.
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.expireLapsedLicenses),
		gocron.WithName("license-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		log.Printf("Failed to create license expiry job: %v", err)
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.retryNotifications),
		gocron.WithName("notification-retry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		log.Printf("Failed to create notification retry job: %v", err)
	}
}

func (js *JobScheduler) expireLapsedLicenses() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := js.partnerRepo.ExpireLapsedLicenses(ctx)
	if err != nil {
		log.Printf("License expiry sweep failed: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("License expiry sweep deactivated %d lapsed licenses", expired)
	}
}

func (js *JobScheduler) retryNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := js.notificationSvc.RetryFailedNotifications(ctx); err != nil {
		log.Printf("Notification retry failed: %v", err)
	}
}
