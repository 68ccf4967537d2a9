package pool

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// defaultTimeout bounds a single pool request. The core leaves this to the
// transport; the source never specifies one, so requests here cannot hang
// forever on a dead pool.
const defaultTimeout = 30 * time.Second

// HTTPSClient talks to a real pool over HTTPS.
type HTTPSClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     log.Logger
}

// NewHTTPSClient builds a Client against host, authenticating every request
// with token as the auth_token query parameter.
func NewHTTPSClient(host, token string) *HTTPSClient {
	base := host
	if !hasScheme(base) {
		base = "https://" + base
	}
	return &HTTPSClient{
		baseURL: base,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log.New("name", "pool"),
	}
}

func hasScheme(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

func (c *HTTPSClient) Register() (UserInfo, bool) {
	var info UserInfo
	ok := c.get("/api/v1/register", &info)
	return info, ok
}

func (c *HTTPSClient) GetTask() (Task, bool) {
	var task Task
	ok := c.get("/api/v1/task", &task)
	return task, ok
}

func (c *HTTPSClient) SendAnswer(answer Answer) (AnswerStatus, bool) {
	body, err := json.Marshal(answer)
	if err != nil {
		c.log.Error("failed to encode answer", "err", err)
		return AnswerStatus{}, false
	}

	endpoint := c.baseURL + "/api/v1/send_answer?auth_token=" + url.QueryEscape(c.token)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		c.log.Error("failed to build send_answer request", "err", err)
		return AnswerStatus{}, false
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("send_answer request failed", "err", err)
		return AnswerStatus{}, false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read send_answer response", "err", err)
		return AnswerStatus{}, false
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusBadRequest:
		var status AnswerStatus
		if err := json.Unmarshal(respBody, &status); err != nil {
			c.log.Error("failed to decode send_answer response", "err", err, "status", resp.StatusCode)
			return AnswerStatus{}, false
		}
		logUnknownFields("AnswerStatus", respBody, &struct {
			Status string `json:"status"`
		}{})
		return status, true
	default:
		c.log.Error("send_answer rejected by pool", "status", resp.StatusCode, "body", string(respBody))
		return AnswerStatus{}, false
	}
}

// get performs an authenticated GET against path and decodes a 200 response into out.
func (c *HTTPSClient) get(path string, out any) bool {
	endpoint := c.baseURL + path + "?auth_token=" + url.QueryEscape(c.token)
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Error("failed to build request", "path", path, "err", err)
		return false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "path", path, "err", err)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read response", "path", path, "err", err)
		return false
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error("unexpected status", "path", path, "status", resp.StatusCode, "body", string(body))
		return false
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.log.Error("failed to decode response", "path", path, "err", err)
		return false
	}
	return true
}
