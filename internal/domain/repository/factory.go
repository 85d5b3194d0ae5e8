package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Invoices() InvoiceRepository
	Profiles() ProfileRepository
	Projects() ProjectRepository
	Notifications() NotificationRepository
	PaymentEvents() PaymentEventRepository
}
