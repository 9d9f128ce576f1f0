package timers

import "fmt"

// Context names the execution context a Registry belongs to.
type Context string

const (
	// ContextClient is the page script runtime (the browser side).
	ContextClient Context = "client"
	// ContextRender is the Go render loop (the server-render side).
	ContextRender Context = "render"
)

// ParseContext converts a flag value into a Context.
func ParseContext(s string) (Context, error) {
	switch c := Context(s); c {
	case ContextClient, ContextRender:
		return c, nil
	}
	return "", fmt.Errorf("unknown timer context %q (want %q or %q)", s, ContextClient, ContextRender)
}

// Set holds one independent Registry per execution context.
type Set struct {
	client *Registry
	render *Registry
}

// NewSet builds a Set whose registries schedule on the given hosts.
func NewSet(client, render Host) *Set {
	return &Set{
		client: New(client),
		render: New(render),
	}
}

// For returns the Registry of ctx, or nil for an unknown context.
func (s *Set) For(ctx Context) *Registry {
	switch ctx {
	case ContextClient:
		return s.client
	case ContextRender:
		return s.render
	}
	return nil
}
