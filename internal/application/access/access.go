package access

import "github.com/rdcosta-dev/paysplit-go/internal/domain/payment"

// Controller answers authorization questions as a pure function of the
// caller, the configured admin identity and the target payment. The admin
// is fixed at construction.
type Controller struct {
	Admin string
}

func (c Controller) IsAdmin(caller string) bool {
	return caller != "" && caller == c.Admin
}

// CanManage reports whether caller may cancel or refund p: the payer of
// the payment, or the admin acting as payer-proxy.
func (c Controller) CanManage(caller string, p *payment.Payment) bool {
	if p == nil {
		return false
	}
	return caller == p.Payer || c.IsAdmin(caller)
}
