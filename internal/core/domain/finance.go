package domain

import "time"

// Currency is one of the ISO codes the agency bills in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD, CurrencyAUD:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool { return s == PaymentUnpaid || s == PaymentPaid }

type RevenueStatus string

const (
	RevenuePending RevenueStatus = "pending"
	RevenuePaid    RevenueStatus = "paid"
)

func (s RevenueStatus) Valid() bool { return s == RevenuePending || s == RevenuePaid }

// Payment is money owed to an employee for work on a project.
type Payment struct {
	ID         string        `json:"id"         bson:"_id"`
	EmployeeID string        `json:"employeeId" bson:"employee_id"`
	ProjectID  string        `json:"projectId"  bson:"project_id"`
	Amount     float64       `json:"amount"     bson:"amount"`
	Currency   Currency      `json:"currency"   bson:"currency"`
	Status     PaymentStatus `json:"status"     bson:"status"`
	Date       time.Time     `json:"date"       bson:"date"`
	CreatedAt  time.Time     `json:"createdAt"  bson:"created_at"`
}

// Revenue is money received from a client for a project.
type Revenue struct {
	ID           string        `json:"id"           bson:"_id"`
	ClientID     string        `json:"clientId"     bson:"client_id"`
	ProjectID    string        `json:"projectId"    bson:"project_id"`
	Amount       float64       `json:"amount"       bson:"amount"`
	Currency     Currency      `json:"currency"     bson:"currency"`
	Status       RevenueStatus `json:"status"       bson:"status"`
	DateReceived time.Time     `json:"dateReceived" bson:"date_received"`
	CreatedAt    time.Time     `json:"createdAt"    bson:"created_at"`
}
