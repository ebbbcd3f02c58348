package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *PaymentHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/payments", handler.CreatePayment)
	r.Get("/payments/count", handler.GetPaymentCount)
	r.Get("/payments/{id}", handler.GetPayment)
	r.Post("/payments/{id}/refund", handler.RefundPayment)
	r.Post("/payments/{id}/cancel", handler.CancelPayment)
	r.Get("/users/{owner}/payments", handler.GetUserPayments)
	r.Get("/fee", handler.GetFee)
	r.Put("/fee", handler.UpdateFee)
	r.Put("/fee/recipient", handler.UpdateFeeRecipient)
	r.Post("/admin/withdraw", handler.EmergencyWithdraw)

	return r
}
