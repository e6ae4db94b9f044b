package mesh

// History is the edit journal of an Editor. Every mutating operation is
// recorded as one entry unless suppression is active or a transaction is
// open, in which case all operations inside the transaction collapse into a
// single named entry when the outermost transaction closes.
type History struct {
	entries  []string
	suppress int
	txDepth  int
	txName   string
	txDirty  bool
}

// BeginSuppression opens a suppression scope. Scopes nest; callers must pair
// every Begin with an End, normally via defer.
func (h *History) BeginSuppression() {
	h.suppress++
}

// EndSuppression closes the innermost suppression scope.
func (h *History) EndSuppression() {
	if h.suppress == 0 {
		panic("mesh: EndSuppression without matching BeginSuppression")
	}
	h.suppress--
}

// Suppressed reports whether recording is currently disabled.
func (h *History) Suppressed() bool {
	return h.suppress > 0
}

// OpenTransaction starts grouping subsequent records into one entry named
// name. Nested opens are absorbed into the outermost transaction.
func (h *History) OpenTransaction(name string) {
	if h.txDepth == 0 {
		h.txName = name
		h.txDirty = false
	}
	h.txDepth++
}

// CloseTransaction closes the innermost transaction. Closing the outermost
// transaction emits its entry if anything was recorded inside it. Closing
// with no transaction open is a no-op, so a deferred close is always safe.
func (h *History) CloseTransaction() {
	if h.txDepth == 0 {
		return
	}
	h.txDepth--
	if h.txDepth == 0 && h.txDirty {
		h.entries = append(h.entries, h.txName)
		h.txDirty = false
	}
}

// record notes one mutating operation.
func (h *History) record(name string) {
	if h.suppress > 0 {
		return
	}
	if h.txDepth > 0 {
		h.txDirty = true
		return
	}
	h.entries = append(h.entries, name)
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the recorded entry names, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
