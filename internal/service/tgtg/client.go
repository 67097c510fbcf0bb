// Package tgtg TooGoodToGo API에서 찜 목록을 조회하는 스냅샷 소스를 제공합니다.
package tgtg

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/fetcher"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/darkkaiser/tgtg-watcher/pkg/strutil"
	"github.com/tidwall/gjson"
)

const component = "tgtg.client"

const (
	favoritesEndpoint = "item/v8/"
	refreshEndpoint   = "auth/v3/token/refresh"

	pageSize = 400
	maxPages = 10
)

// session 토큰 갱신으로 발급받은 토큰을 보관합니다.
// 설정 파일의 토큰이 바뀌면 설정 값을 우선합니다.
type session struct {
	seedAccess  string
	seedRefresh string

	accessToken  string
	refreshToken string
}

// Client 찜 목록을 조회하는 contract.SnapshotSource 구현체입니다.
type Client struct {
	newFetcher func(cfg *config.APIConfig) fetcher.Fetcher

	mu      sync.Mutex
	f       fetcher.Fetcher
	fKey    fetcherKey
	session session
}

type fetcherKey struct {
	timeout   string
	userAgent string
	rateLimit float64
}

// NewClient Client를 생성합니다.
func NewClient() *Client {
	return &Client{
		newFetcher: func(cfg *config.APIConfig) fetcher.Fetcher {
			return fetcher.NewRateLimitedFetcher(fetcher.NewHTTPFetcher(cfg.Timeout(), cfg.UserAgent), cfg.RateLimit)
		},
	}
}

// FetchFavorites 찜 목록 전체를 조회합니다.
// 액세스 토큰이 만료되어 401 응답을 받으면 한 번에 한해 토큰을 갱신한 뒤 다시 시도합니다.
func (c *Client) FetchFavorites(ctx context.Context, cfg *config.AppConfig) ([]contract.Listing, error) {
	api := &cfg.API
	creds := api.Credentials
	if creds.UserID == "" || (creds.AccessToken == "" && creds.RefreshToken == "") {
		return nil, ErrMissingCredentials
	}

	f, accessToken := c.prepare(api)

	listings, err := c.fetchAll(ctx, f, api, accessToken)
	if err == nil {
		return listings, nil
	}

	var statusErr *fetcher.HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"access_token": strutil.Mask(accessToken),
	}).Info("액세스 토큰이 만료되어 토큰 갱신을 시도합니다")

	accessToken, err = c.refresh(ctx, f, api)
	if err != nil {
		return nil, err
	}

	return c.fetchAll(ctx, f, api, accessToken)
}

// prepare 현재 설정에 맞는 Fetcher와 사용할 액세스 토큰을 반환합니다.
func (c *Client) prepare(api *config.APIConfig) (fetcher.Fetcher, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := fetcherKey{timeout: api.RequestTimeout, userAgent: api.UserAgent, rateLimit: api.RateLimit}
	if c.f == nil || c.fKey != key {
		c.f = c.newFetcher(api)
		c.fKey = key
	}

	creds := api.Credentials
	if c.session.seedAccess != creds.AccessToken || c.session.seedRefresh != creds.RefreshToken {
		c.session = session{
			seedAccess:   creds.AccessToken,
			seedRefresh:  creds.RefreshToken,
			accessToken:  creds.AccessToken,
			refreshToken: creds.RefreshToken,
		}
	}

	return c.f, c.session.accessToken
}

func (c *Client) fetchAll(ctx context.Context, f fetcher.Fetcher, api *config.APIConfig, accessToken string) ([]contract.Listing, error) {
	var all []contract.Listing
	for page := 1; page <= maxPages; page++ {
		body, err := fetcher.DoJSON(ctx, f, http.MethodPost, endpointURL(api.BaseURL, favoritesEndpoint), authHeader(accessToken), favoritesRequest{
			UserID:        api.Credentials.UserID,
			Origin:        origin{Latitude: api.Origin.Latitude, Longitude: api.Origin.Longitude},
			Radius:        api.Origin.Radius,
			PageSize:      pageSize,
			Page:          page,
			Discover:      false,
			FavoritesOnly: true,
			WithStockOnly: false,
		})
		if err != nil {
			return nil, err
		}

		listings, total, err := parseFavorites(body)
		if err != nil {
			return nil, err
		}
		all = append(all, listings...)

		if total < pageSize {
			break
		}
	}

	return all, nil
}

func (c *Client) refresh(ctx context.Context, f fetcher.Fetcher, api *config.APIConfig) (string, error) {
	c.mu.Lock()
	refreshToken := c.session.refreshToken
	c.mu.Unlock()

	if refreshToken == "" {
		return "", apperrors.Wrap(ErrMissingCredentials, apperrors.Unauthorized, "refresh_token이 없어 토큰을 갱신할 수 없습니다")
	}

	body, err := fetcher.DoJSON(ctx, f, http.MethodPost, endpointURL(api.BaseURL, refreshEndpoint), nil, refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.Unauthorized, "액세스 토큰 갱신에 실패했습니다")
	}
	if !gjson.ValidBytes(body) {
		return "", newErrInvalidResponse(refreshEndpoint)
	}

	accessToken := gjson.GetBytes(body, "access_token").String()
	if accessToken == "" {
		return "", ErrRefreshTokenMissing
	}

	c.mu.Lock()
	c.session.accessToken = accessToken
	if rt := gjson.GetBytes(body, "refresh_token").String(); rt != "" {
		c.session.refreshToken = rt
	}
	c.mu.Unlock()

	applog.WithComponent(component).Info("액세스 토큰 갱신 완료")

	return accessToken, nil
}

func endpointURL(baseURL, endpoint string) string {
	return strings.TrimRight(baseURL, "/") + "/" + endpoint
}

func authHeader(accessToken string) http.Header {
	h := http.Header{}
	if accessToken != "" {
		h.Set("Authorization", "Bearer "+accessToken)
	}
	h.Set("Accept-Language", "en-US")
	return h
}

type origin struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type favoritesRequest struct {
	UserID        string  `json:"user_id"`
	Origin        origin  `json:"origin"`
	Radius        int     `json:"radius"`
	PageSize      int     `json:"page_size"`
	Page          int     `json:"page"`
	Discover      bool    `json:"discover"`
	FavoritesOnly bool    `json:"favorites_only"`
	WithStockOnly bool    `json:"with_stock_only"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
