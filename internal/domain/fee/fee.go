package fee

import "sync"

// MaxBps caps the platform fee at 10%. Enforced at the admin-update
// boundary, not in Split.
const MaxBps = 1000

// Config holds the global fee rate and fee recipient. Mutation goes
// through the lifecycle engine's admin operations only.
type Config struct {
	mu        sync.RWMutex
	bps       int64
	recipient string
}

func NewConfig(bps int64, recipient string) *Config {
	return &Config{bps: bps, recipient: recipient}
}

func (c *Config) Bps() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.bps
}

func (c *Config) Recipient() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.recipient
}

func (c *Config) SetBps(bps int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bps = bps
}

func (c *Config) SetRecipient(recipient string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recipient = recipient
}

// Split divides amount into the platform fee and the recipient share.
// feeAmount + recipientAmount == amount for any non-negative input.
func Split(amount, bps int64) (feeAmount, recipientAmount int64) {
	feeAmount = amount * bps / 10000
	recipientAmount = amount - feeAmount
	return feeAmount, recipientAmount
}
