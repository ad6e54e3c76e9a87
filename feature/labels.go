package feature

// Labels tracks a slice of lag features and their index locations that match up
// with the ordering of the coefficients assigned to each of these features.
type Labels struct {
	idx    map[string]int
	labels []Lag
}

func NewLabels(labels []Lag) *Labels {
	idx := make(map[string]int)
	for i := 0; i < len(labels); i++ {
		idx[labels[i].String()] = i
	}
	fl := &Labels{
		labels: labels,
		idx:    idx,
	}
	return fl
}

func (f *Labels) Len() int {
	if f == nil {
		return 0
	}
	return len(f.labels)
}

func (f *Labels) Labels() []Lag {
	if f == nil {
		return nil
	}
	labels := make([]Lag, len(f.labels))
	copy(labels, f.labels)
	return labels
}

func (f *Labels) Index(label Lag) (int, bool) {
	if f == nil {
		return -1, false
	}
	if idx, exists := f.idx[label.String()]; exists {
		return idx, exists
	}
	return -1, false
}
