package core

import (
	"context"
	"fmt"
	"log"
)

// Interface is implemented by every long-running part of the dashboard
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry starts services in registration order and stops them in reverse
type Registry struct {
	services []Interface
	started  int
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a service; services it depends on must be registered first
func (r *Registry) Register(service Interface) {
	r.services = append(r.services, service)
}

// StartAll starts every service. When one fails, the ones already started
// are stopped again and the error is returned.
func (r *Registry) StartAll(ctx context.Context) error {
	for i, service := range r.services {
		if err := service.Start(ctx); err != nil {
			log.Printf("Registry: %T failed to start: %v", service, err)
			r.StopAll()
			return fmt.Errorf("starting service %d (%T): %w", i, service, err)
		}
		r.started = i + 1
	}
	return nil
}

// StopAll stops the started services in reverse order
func (r *Registry) StopAll() {
	for i := r.started - 1; i >= 0; i-- {
		r.services[i].Stop()
	}
	r.started = 0
}
