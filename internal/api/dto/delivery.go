package dto

import (
	"milk-delivery-service/internal/domain"
)

// Text accepts a JSON string or number for any request field.
type Text = domain.Text

func textPtr(t *Text) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

func textValue(t *Text) string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// DeliveryRequest is the body accepted by every mutating verb.
// A nil field was absent from the JSON body.
type DeliveryRequest struct {
	User       *Text `json:"user"`
	TargetDate *Text `json:"targetDate"`
	Address    *Text `json:"address"`
	Milk       *Text `json:"milk"`
	Partner    *Text `json:"partner"`
	Quantity   *Text `json:"quantity"`
	Date       *Text `json:"date"`
}

func (r DeliveryRequest) Record() domain.DeliveryRecord {
	return domain.DeliveryRecord{
		User:     textValue(r.User),
		Address:  textValue(r.Address),
		Milk:     textValue(r.Milk),
		Partner:  textValue(r.Partner),
		Quantity: textValue(r.Quantity),
		Date:     textValue(r.Date),
	}
}

func (r DeliveryRequest) Patch() domain.RecordPatch {
	return domain.RecordPatch{
		Address:  textPtr(r.Address),
		Milk:     textPtr(r.Milk),
		Partner:  textPtr(r.Partner),
		Quantity: textPtr(r.Quantity),
		Date:     textPtr(r.Date),
	}
}

func (r DeliveryRequest) UserName() string { return textValue(r.User) }

func (r DeliveryRequest) Target() string { return textValue(r.TargetDate) }

type DeliveryResponse struct {
	User     string `json:"user"`
	Address  string `json:"address"`
	Milk     string `json:"milk"`
	Partner  string `json:"partner"`
	Quantity string `json:"quantity"`
	Date     string `json:"date"`
}

func NewDeliveryResponse(rec domain.DeliveryRecord) DeliveryResponse {
	return DeliveryResponse{
		User:     rec.User,
		Address:  rec.Address,
		Milk:     rec.Milk,
		Partner:  rec.Partner,
		Quantity: rec.Quantity,
		Date:     rec.Date,
	}
}

type CreateDeliveryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UpdateDeliveryResponse struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	UpdatedRow DeliveryResponse `json:"updatedRow"`
	Status     int              `json:"status"`
}

type DeleteDeliveryResponse struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	DeletedRow DeliveryResponse `json:"deletedRow"`
	Status     int              `json:"status"`
}

type NotFoundResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
