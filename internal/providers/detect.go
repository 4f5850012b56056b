package providers

// Status describes one provider's availability for reporting.
type Status struct {
	Name      string `json:"name"`
	Vendor    string `json:"vendor"`
	Available bool   `json:"available"`
}

// Detect builds the (primary, counter) provider pair from the configured
// specs. Pair selection is a policy decision that stays outside the
// orchestrator: when both sides are available they are used as configured;
// when only one is, it serves both perspectives rather than failing the
// debate outright.
func Detect(primary, counter Spec) (Provider, Provider, error) {
	p, err := New(primary)
	if err != nil {
		return nil, nil, err
	}
	c, err := New(counter)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case p.IsAvailable() && c.IsAvailable():
		return p, c, nil
	case p.IsAvailable():
		second, err := New(primary)
		if err != nil {
			return nil, nil, err
		}
		return p, second, nil
	case c.IsAvailable():
		second, err := New(counter)
		if err != nil {
			return nil, nil, err
		}
		return c, second, nil
	default:
		// Neither is reachable; return the configured pair and let the
		// invocation surface the failure as a provider error.
		return p, c, nil
	}
}

// StatusOf reports availability for a set of specs.
func StatusOf(specs ...Spec) []Status {
	statuses := make([]Status, 0, len(specs))
	for _, spec := range specs {
		p, err := New(spec)
		if err != nil {
			statuses = append(statuses, Status{Name: spec.Name, Vendor: spec.Vendor})
			continue
		}
		statuses = append(statuses, Status{
			Name:      p.Name(),
			Vendor:    p.Vendor(),
			Available: p.IsAvailable(),
		})
	}
	return statuses
}
