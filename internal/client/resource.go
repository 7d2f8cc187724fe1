package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/paymentrails/paymentrails-go/internal/http"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

// itemPath fills format with path-escaped ids. Blank ids are rejected before any request is made.
func itemPath(format string, ids ...string) (string, error) {
	args := make([]interface{}, 0, len(ids))

	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return "", paymentrails.ErrIDRequired
		}

		args = append(args, url.PathEscape(id))
	}

	return fmt.Sprintf(format, args...), nil
}

func getResource[T paymentrails.Resource](ctx context.Context, httpClient *http.Client, path, key, noun string) (*T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", noun, err)
	}

	resource, err := paymentrails.DecodeResource[T](resp.Body, key)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", noun, err)
	}

	return resource, nil
}

func postResource[T paymentrails.Resource](ctx context.Context, httpClient *http.Client, path, key, verb string, body interface{}) (*T, error) {
	resp, err := httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", verb, err)
	}

	resource, err := paymentrails.DecodeResource[T](resp.Body, key)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", key, err)
	}

	return resource, nil
}

func listResources[T paymentrails.Resource](ctx context.Context, httpClient *http.Client, path, key string, params *paymentrails.QueryParams) (*paymentrails.Collection[T], error) {
	resp, err := httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", key, err)
	}

	collection, err := paymentrails.DecodeCollection[T](resp.Body, key)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", key, err)
	}

	return collection, nil
}

func acknowledge(resp *http.Response, verb string) (bool, error) {
	acknowledged, err := paymentrails.DecodeOK(resp.Body)
	if err != nil {
		return false, fmt.Errorf("parsing %s response: %w", verb, err)
	}

	return acknowledged, nil
}
