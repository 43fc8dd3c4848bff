// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"cogentcore.org/ennoea/saves/savestest"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockS3 is a path style fake of the object operations used by the store.
// Listing returns one object per page to exercise pagination.
type mockS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/xml"}},
	}
}

func (m *mockS3) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	q := req.URL.Query()
	if req.Method == http.MethodGet && q.Get("list-type") == "2" {
		var keys []string
		for k := range m.objects {
			if strings.HasPrefix(k, q.Get("prefix")) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		start := 0
		if tok := q.Get("continuation-token"); tok != "" {
			fmt.Sscanf(tok, "%d", &start)
		}
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><ListBucketResult>`)
		if start+1 < len(keys) {
			fmt.Fprintf(&b, "<IsTruncated>true</IsTruncated><NextContinuationToken>%d</NextContinuationToken>", start+1)
		} else {
			b.WriteString("<IsTruncated>false</IsTruncated>")
		}
		if start < len(keys) {
			fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size></Contents>", keys[start], len(m.objects[keys[start]]))
		}
		b.WriteString("</ListBucketResult>")
		return response(http.StatusOK, b.String()), nil
	}
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		m.objects[key] = body
		m.puts = append(m.puts, key)
		return response(http.StatusOK, ""), nil
	case http.MethodGet:
		body, ok := m.objects[key]
		if !ok {
			return response(http.StatusNotFound, "<Error><Code>NoSuchKey</Code><Message>not found</Message></Error>"), nil
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(body)),
			Header: http.Header{"Content-Type": {"application/json"}}, ContentLength: int64(len(body))}, nil
	}
	return response(http.StatusNotImplemented, ""), nil
}

func newMock(t *testing.T, prefix string) (*Store, *mockS3) {
	m := &mockS3{objects: map[string][]byte{}}
	s, err := New(context.Background(), Config{
		Bucket:          "saves",
		Prefix:          prefix,
		Endpoint:        "https://mock.s3.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	}, func(o *awss3.Options) {
		o.HTTPClient = &http.Client{Transport: m}
	})
	require.NoError(t, err)
	return s, m
}

func TestStore(t *testing.T) {
	s, _ := newMock(t, "ennoea/")
	savestest.Run(t, s)
}

func TestObjectLayout(t *testing.T) {
	s, m := newMock(t, "p/")
	sum, err := s.Put(context.Background(), savestest.Doc("Layout"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p/" + sum.ID + "/architecture.json", "p/" + sum.ID + "/saveInfo.json"}, m.puts)
	assert.Contains(t, string(m.objects["p/"+sum.ID+"/saveInfo.json"]), `"lastSaved"`)
}

func TestBucketRequired(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
