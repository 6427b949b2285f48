// Package gateway abstracts the external payment provider so services can
// charge without knowing which provider backs the platform.
package gateway

import "context"

type ChargeRequest struct {
	OrderId       string
	Amount        float64
	ItemId        string
	ItemName      string
	CustomerName  string
	CustomerEmail string
}

type ChargeResult struct {
	Reference   string
	RedirectURL string
}

type ChargeGateway interface {
	CreateCharge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}
