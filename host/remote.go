package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/ddvk/rmscribble/log"
	"github.com/pkg/errors"
)

const (
	opCurrentFilePath = "getCurrentFilePath"
	opElements        = "getElements"
	opRecycleElement  = "recycleElement"
	opInsertGeometry  = "insertGeometry"
	opCreateElement   = "createElement"
)

// Remote talks to a host exposing its plugin API over HTTP. Every call is
// a JSON POST to <BaseURL>/<op>; replies are Result envelopes.
type Remote struct {
	BaseURL string
	Client  *http.Client
}

// NewRemote returns a Remote using client, or http.DefaultClient when nil.
func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

type elementsRequest struct {
	Page int    `json:"pageNum"`
	Path string `json:"path"`
}

type recycleRequest struct {
	ID string `json:"uuid"`
}

type createRequest struct {
	Type ElementType `json:"type"`
}

func (r *Remote) CurrentFilePath(ctx context.Context) (string, error) {
	res, err := call[string](ctx, r, opCurrentFilePath, nil)
	if err != nil {
		return "", err
	}
	return res.Value(opCurrentFilePath)
}

func (r *Remote) Elements(ctx context.Context, page int, path string) ([]Element, error) {
	res, err := call[[]Element](ctx, r, opElements, elementsRequest{Page: page, Path: path})
	if err != nil {
		return nil, err
	}
	return res.Value(opElements)
}

func (r *Remote) RecycleElement(ctx context.Context, id string) error {
	res, err := call[json.RawMessage](ctx, r, opRecycleElement, recycleRequest{ID: id})
	if err != nil {
		var ce *CallError
		if errors.As(err, &ce) {
			return &DeletionFailedError{ID: id, Message: ce.Message}
		}
		return err
	}
	if !res.Success {
		return &DeletionFailedError{ID: id, Message: res.message(opRecycleElement)}
	}
	log.Trace.Printf("element %s deleted", id)
	return nil
}

func (r *Remote) InsertGeometry(ctx context.Context, spec GeometrySpec) (Geometry, error) {
	res, err := call[Geometry](ctx, r, opInsertGeometry, spec)
	if err != nil {
		return Geometry{}, err
	}
	return res.Value(opInsertGeometry)
}

func (r *Remote) CreateElement(ctx context.Context, typ ElementType) (Element, error) {
	res, err := call[Element](ctx, r, opCreateElement, createRequest{Type: typ})
	if err != nil {
		return Element{}, err
	}
	return res.Value(opCreateElement)
}

// call posts params to op. Transport failures and undecodable replies are
// reported as *CallError so callers see a single failure kind.
func call[T any](ctx context.Context, r *Remote, op string, params interface{}) (Result[T], error) {
	var res Result[T]

	body := []byte("{}")
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return res, errors.Wrapf(err, "encode %s request", op)
		}
		body = b
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/"+op, bytes.NewReader(body))
	if err != nil {
		return res, errors.Wrapf(err, "create %s request", op)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return res, &CallError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return res, &CallError{Op: op, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return res, &CallError{Op: op, Message: fmt.Sprintf("status %d, response: %s", resp.StatusCode, string(data))}
	}

	if err := json.Unmarshal(data, &res); err != nil {
		return res, &CallError{Op: op, Message: fmt.Sprintf("invalid reply: %v", err)}
	}

	log.Trace.Printf("%s: success=%v", op, res.Success)
	return res, nil
}
