package access_test

import (
	"testing"

	"github.com/rdcosta-dev/paysplit-go/internal/application/access"
	"github.com/rdcosta-dev/paysplit-go/internal/domain/payment"
)

func TestController_IsAdmin(t *testing.T) {
	ctrl := access.Controller{Admin: "admin"}

	if !ctrl.IsAdmin("admin") {
		t.Errorf("expected admin to be recognized")
	}
	if ctrl.IsAdmin("someone-else") {
		t.Errorf("expected non-admin caller to be rejected")
	}
	if ctrl.IsAdmin("") {
		t.Errorf("expected null caller to be rejected")
	}
}

func TestController_CanManage(t *testing.T) {
	ctrl := access.Controller{Admin: "admin"}
	p := &payment.Payment{ID: 1, Payer: "alice", Recipient: "bob"}

	if !ctrl.CanManage("alice", p) {
		t.Errorf("expected payer to manage own payment")
	}
	if !ctrl.CanManage("admin", p) {
		t.Errorf("expected admin to act as payer-proxy")
	}
	if ctrl.CanManage("bob", p) {
		t.Errorf("expected recipient to be rejected")
	}
	if ctrl.CanManage("", p) {
		t.Errorf("expected null caller to be rejected")
	}
	if ctrl.CanManage("alice", nil) {
		t.Errorf("expected nil payment to be rejected")
	}
}
