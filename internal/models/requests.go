package models

import "time"

// ServiceRequestStatus tracks an inbound lead through the admin pipeline.
type ServiceRequestStatus string

const (
	ServiceRequestNew       ServiceRequestStatus = "new"
	ServiceRequestContacted ServiceRequestStatus = "contacted"
	ServiceRequestConverted ServiceRequestStatus = "converted"
	ServiceRequestClosed    ServiceRequestStatus = "closed"
)

// ServiceRequest is a lead submitted from the contact/pricing forms.
// Created once per submission; this module never mutates it afterwards.
type ServiceRequest struct {
	ID        string               `json:"id,omitempty"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone,omitempty"`
	PlanSlug  string               `json:"plan_slug,omitempty"`
	Message   string               `json:"message"`
	Status    ServiceRequestStatus `json:"status,omitempty"`
	CreatedAt time.Time            `json:"created_at,omitempty"`
}
