package pool

// MockClient is a fixed-response Client, selected by the params.MockPoolScheme
// sentinel pool URL and used directly by the app package's loop tests. Any field
// left nil/zero falls back to the defaults the original program's mock
// client hard-codes.
type MockClient struct {
	UserInfo     *UserInfo
	Task         *Task
	AnswerStatus *AnswerStatus

	RegisterFails   bool
	GetTaskFails    bool
	SendAnswerFails bool
	SentAnswers     []Answer
}

func defaultUserInfo() UserInfo {
	return UserInfo{
		PoolAddress: "mock-pool",
		UserAddress: "mock-user",
		Shares:      0,
	}
}

func defaultTask() Task {
	return Task{
		Seed:         "0x1",
		Complexity:   "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		GiverAddress: "mock-giver",
		PoolAddress:  "mock-pool",
		Expires:      0,
	}
}

func defaultAnswerStatus() AnswerStatus {
	return AnswerStatus{Accepted: true}
}

func (m *MockClient) Register() (UserInfo, bool) {
	if m.RegisterFails {
		return UserInfo{}, false
	}
	if m.UserInfo != nil {
		return *m.UserInfo, true
	}
	return defaultUserInfo(), true
}

func (m *MockClient) GetTask() (Task, bool) {
	if m.GetTaskFails {
		return Task{}, false
	}
	if m.Task != nil {
		return *m.Task, true
	}
	return defaultTask(), true
}

func (m *MockClient) SendAnswer(answer Answer) (AnswerStatus, bool) {
	if m.SendAnswerFails {
		return AnswerStatus{}, false
	}
	m.SentAnswers = append(m.SentAnswers, answer)
	if m.AnswerStatus != nil {
		return *m.AnswerStatus, true
	}
	return defaultAnswerStatus(), true
}
