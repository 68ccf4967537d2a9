// Package pool holds the wire-level records exchanged with the mining pool
// and the two PoolClient implementations (HTTPS and mock).
package pool

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/log"
)

// UserInfo is the response to register.
type UserInfo struct {
	PoolAddress string `json:"pool_address"`
	UserAddress string `json:"user_address"`
	Shares      int64  `json:"shares"`
}

// Task is one unit of mining work issued by the pool.
type Task struct {
	Seed         string `json:"seed"`
	Complexity   string `json:"complexity"`
	GiverAddress string `json:"giver_address"`
	PoolAddress  string `json:"pool_address"`
	Expires      int64  `json:"-"`
}

// taskWire mirrors Task but leaves Expires as a raw JSON value so it can be
// decoded from either a wire string or a wire number; the two surviving
// revisions of the original client disagree on which one it emits.
type taskWire struct {
	Seed         string          `json:"seed"`
	Complexity   string          `json:"complexity"`
	GiverAddress string          `json:"giver_address"`
	PoolAddress  string          `json:"pool_address"`
	Expires      json.RawMessage `json:"expires"`
}

// MarshalJSON emits expires as a decimal string, per the wire contract.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Seed         string `json:"seed"`
		Complexity   string `json:"complexity"`
		GiverAddress string `json:"giver_address"`
		PoolAddress  string `json:"pool_address"`
		Expires      string `json:"expires"`
	}{
		Seed:         t.Seed,
		Complexity:   t.Complexity,
		GiverAddress: t.GiverAddress,
		PoolAddress:  t.PoolAddress,
		Expires:      strconv.FormatInt(t.Expires, 10),
	})
}

// UnmarshalJSON accepts expires as either a JSON string or a JSON number.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w taskWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	t.Seed = w.Seed
	t.Complexity = w.Complexity
	t.GiverAddress = w.GiverAddress
	t.PoolAddress = w.PoolAddress

	if len(w.Expires) == 0 {
		return fmt.Errorf("task: missing expires field")
	}

	var asString string
	if err := json.Unmarshal(w.Expires, &asString); err == nil {
		expires, err := strconv.ParseInt(asString, 10, 64)
		if err != nil {
			return fmt.Errorf("task: expires %q is not an integer: %w", asString, err)
		}
		t.Expires = expires
		return nil
	}

	var asNumber int64
	if err := json.Unmarshal(w.Expires, &asNumber); err == nil {
		t.Expires = asNumber
		return nil
	}

	return fmt.Errorf("task: expires field is neither a string nor a number")
}

// Statistic is an optional count/rate summary attached to a submitted Answer.
type Statistic struct {
	Count int   `json:"count"`
	Rate  int64 `json:"rate"`
}

// Answer is the artifact produced by a successful miner run, ready to submit.
type Answer struct {
	GiverAddress string
	Boc          []byte
	Statistic    *Statistic
}

type answerWire struct {
	GiverAddress string `json:"giver_address"`
	BocData      string `json:"boc_data"`
}

// MarshalJSON base64-encodes Boc (RFC 4648) into boc_data.
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerWire{
		GiverAddress: a.GiverAddress,
		BocData:      base64.StdEncoding.EncodeToString(a.Boc),
	})
}

// UnmarshalJSON decodes boc_data back into raw bytes.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var w answerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	boc, err := base64.StdEncoding.DecodeString(w.BocData)
	if err != nil {
		return fmt.Errorf("answer: boc_data is not valid base64: %w", err)
	}
	a.GiverAddress = w.GiverAddress
	a.Boc = boc
	return nil
}

// AnswerStatus reports whether a submitted Answer was accepted. Any wire
// value other than "ACCEPTED" decodes as not accepted.
type AnswerStatus struct {
	Accepted bool
}

func (s AnswerStatus) MarshalJSON() ([]byte, error) {
	status := "DECLINED"
	if s.Accepted {
		status = "ACCEPTED"
	}
	return json.Marshal(struct {
		Status string `json:"status"`
	}{Status: status})
}

func (s *AnswerStatus) UnmarshalJSON(data []byte) error {
	var w struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Accepted = w.Status == "ACCEPTED"
	return nil
}

// logUnknownFields runs a strict decode pass purely for diagnostics; it
// never affects the already-decoded value or control flow.
func logUnknownFields(name string, data []byte, strict any) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(strict); err != nil {
		log.Debug("decoded payload carries unrecognized fields", "type", name, "err", err)
	}
}
