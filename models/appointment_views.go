package models

// View structs returned by the appointment list/detail queries. They join the
// counterpart party's read model onto the appointment document.

type ProviderSummary struct {
	FullName   string `json:"full_name"`
	AvatarURL  string `json:"avatar_url"`
	ClinicName string `json:"clinic_name"`
}

type UserSummary struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Phone     string `json:"phone"`
}

// UserAppointmentItem is one row of a requester's appointment list.
type UserAppointmentItem struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Start    string          `json:"start"`
	Status   string          `json:"status"`
	Provider ProviderSummary `json:"provider"`
}

// UserAppointmentDetail is the requester-facing detail view.
type UserAppointmentDetail struct {
	Appointment   Appointment     `json:"appointment"`
	ClinicAddress string          `json:"clinic_address"`
	Provider      ProviderSummary `json:"provider"`
}

// ProviderAppointmentItem is one row of a provider's appointment list.
type ProviderAppointmentItem struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"`
	Start  string      `json:"start"`
	Status string      `json:"status"`
	User   UserSummary `json:"user"`
}

// ProviderAppointmentDetail is the provider-facing detail view, including the
// full price breakdown.
type ProviderAppointmentDetail struct {
	Appointment Appointment `json:"appointment"`
	User        UserSummary `json:"user"`
}

// AcceptResult is returned by the accept transition: the updated appointment
// plus the wallet snapshot after the credit.
type AcceptResult struct {
	Appointment *Appointment `json:"appointment"`
	Wallet      *Wallet      `json:"wallet"`
}
