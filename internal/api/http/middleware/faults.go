package middleware

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
)

// Faults makes the mock API fail chosen requests on purpose, so console
// error paths can be driven end to end. Each injected fault fires once.
type Faults struct {
	mu    sync.Mutex
	rules []fault
}

type fault struct {
	method string
	path   string
	status int
	msg    string
}

func NewFaults() *Faults {
	return &Faults{}
}

// Inject fails the next request whose method matches and whose path starts
// with pathPrefix. An empty msg sends no body.
func (f *Faults) Inject(method, pathPrefix string, status int, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, fault{method: method, path: pathPrefix, status: status, msg: msg})
}

// Pending reports how many injected faults have not fired yet.
func (f *Faults) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rules)
}

func (f *Faults) take(method, path string) (fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rules {
		if strings.EqualFold(r.method, method) && strings.HasPrefix(path, r.path) {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return r, true
		}
	}
	return fault{}, false
}

func (f *Faults) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		r, found := f.take(c.Method(), c.Path())
		if !found {
			return c.Next()
		}
		if r.msg == "" {
			return c.SendStatus(r.status)
		}
		return c.Status(r.status).JSON(fiber.Map{"error": r.msg})
	}
}
