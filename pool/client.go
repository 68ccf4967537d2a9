package pool

// Client is the capability set a mining pool exposes to the supervision
// loop. A false second return means the call failed — transport error,
// unexpected HTTP status, or decode error — and has already been logged by
// the implementation; callers never need to inspect the cause.
type Client interface {
	Register() (UserInfo, bool)
	GetTask() (Task, bool)
	SendAnswer(answer Answer) (AnswerStatus, bool)
}
