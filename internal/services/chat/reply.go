package chat

// ReplyKind tags the outcome of a grounded reply attempt so callers can
// distinguish a usable reply from the several ways a turn can degrade.
type ReplyKind int

const (
	// ReplyOK means Text holds a grounded character reply.
	ReplyOK ReplyKind = iota

	// ReplyEmptyInput means the user message was blank after trimming.
	ReplyEmptyInput

	// ReplyIndexMissing means the book has no queryable vector index.
	ReplyIndexMissing

	// ReplyServiceError means an embedding, retrieval, or completion call
	// failed.
	ReplyServiceError
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyOK:
		return "ok"
	case ReplyEmptyInput:
		return "empty_input"
	case ReplyIndexMissing:
		return "index_missing"
	case ReplyServiceError:
		return "service_error"
	default:
		return "unknown"
	}
}

// Reply is the outcome of one retrieval-augmented reply attempt.
type Reply struct {
	Kind ReplyKind
	Text string
	Err  error
}
