package reactor

import (
	"context"
	"fmt"

	"github.com/R3E-Network/chainreactor/infrastructure/logging"
)

// channelSubmitter is the engine's default ActionSubmitter: it forwards
// every submitted action onto the engine's action bus for fan-out to all
// registered executors.
type channelSubmitter[A any] struct {
	bus *bus[A]
}

func newChannelSubmitter[A any](b *bus[A]) ActionSubmitter[A] {
	return &channelSubmitter[A]{bus: b}
}

func (s *channelSubmitter[A]) Submit(action A) error {
	return s.bus.send(action)
}

// PrinterSubmitter logs every submitted action instead of dispatching it to
// executors. It is the idiomatic equivalent of the reference
// implementation's ActionPrinter, routed through infrastructure/logging
// rather than stdlib log to match the rest of the module's ambient stack.
type PrinterSubmitter[A any] struct {
	logger *logging.Logger
	format func(A) string
}

// NewPrinterSubmitter creates a PrinterSubmitter. format may be nil, in
// which case actions are rendered with fmt's default verb.
func NewPrinterSubmitter[A any](logger *logging.Logger, format func(A) string) *PrinterSubmitter[A] {
	if logger == nil {
		logger = logging.Default()
	}
	return &PrinterSubmitter[A]{logger: logger, format: format}
}

func (p *PrinterSubmitter[A]) Submit(action A) error {
	rendered := fmt.Sprintf("%+v", action)
	if p.format != nil {
		rendered = p.format(action)
	}
	p.logger.Info(context.Background(), "action submitted", map[string]interface{}{
		"action": rendered,
	})
	return nil
}

// submitterMap adapts an ActionSubmitter[A2] into an ActionSubmitter[A1] via
// project; actions for which project reports !ok are silently dropped,
// mirroring the core Map submitter's contract.
type submitterMap[A1 any, A2 any] struct {
	inner   ActionSubmitter[A2]
	project func(A1) (A2, bool)
}

// SubmitterMap returns an ActionSubmitter[A1] that projects each submitted
// A1 into an A2 via project and forwards it to inner, dropping the action
// when project reports !ok.
func SubmitterMap[A1 any, A2 any](inner ActionSubmitter[A2], project func(A1) (A2, bool)) ActionSubmitter[A1] {
	return &submitterMap[A1, A2]{inner: inner, project: project}
}

func (m *submitterMap[A1, A2]) Submit(action A1) error {
	a2, ok := m.project(action)
	if !ok {
		return nil
	}
	return m.inner.Submit(a2)
}
