package dto

import "github.com/profislots/profislots-api/internal/models"

type AppointmentListDTO struct {
	ID           uint    `json:"id"`
	Date         string  `json:"appointment_date"`
	Time         string  `json:"appointment_time"`
	Status       string  `json:"status"`
	StaffID      uint    `json:"staff_id"`
	StaffName    string  `json:"staff_name"`
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	ServiceID    uint    `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	DurationMin  int     `json:"duration_min"`
	Price        float64 `json:"price"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:           ap.ID,
			Date:         ap.AppointmentDate,
			Time:         ap.AppointmentTime,
			Status:       ap.Status,
			StaffID:      ap.StaffID,
			StaffName:    ap.Staff.Name,
			CustomerID:   ap.CustomerID,
			CustomerName: ap.Customer.Name,
			ServiceID:    ap.ServiceID,
			ServiceName:  ap.Service.Name,
			DurationMin:  ap.Service.DurationMin,
			Price:        ap.Service.Price,
		})
	}
	return out
}
