package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// UserIndex keeps a searchable copy of user profiles. Passwords and orders
// are never indexed.
type UserIndex struct {
	Client *es.Client
	Index  string
	Logger *logrus.Logger
}

func NewUserIndex(client *es.Client, index string, logger *logrus.Logger) *UserIndex {
	return &UserIndex{Client: client, Index: index, Logger: logger}
}

// Put indexes p under its userId.
func (ix *UserIndex) Put(ctx context.Context, p entity.UserProfile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      ix.Index,
		DocumentID: strconv.FormatInt(p.UserID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index user %d: %s", p.UserID, res.Status())
	}
	return nil
}

// Remove deletes the document of userID. A missing document is not an error.
func (ix *UserIndex) Remove(ctx context.Context, userID int64) error {
	req := esapi.DeleteRequest{Index: ix.Index, DocumentID: strconv.FormatInt(userID, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete user %d: %s", userID, res.Status())
	}
	return nil
}

// Search runs a multi_match over username, email and full name.
func (ix *UserIndex) Search(ctx context.Context, q string, size int) ([]entity.UserProfile, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email^2", "fullName.firstName", "fullName.lastName"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := ix.Client.Search(
		ix.Client.Search.WithContext(c),
		ix.Client.Search.WithIndex(ix.Index),
		ix.Client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		if ix.Logger != nil {
			ix.Logger.WithField("status", res.Status()).WithField("index", ix.Index).Warn("es search response error")
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string             `json:"_id"`
				Source entity.UserProfile `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.UserProfile, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
