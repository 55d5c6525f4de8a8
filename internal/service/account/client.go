package account

import (
	"context"
	"fmt"

	"gitee.com/flycash/notification-scheduler/internal/errs"
	"github.com/go-resty/resty/v2"
)

//go:generate mockgen -source=./client.go -destination=./mocks/account.mock.go -package=accountmocks Client

// Client 账户服务，备份通知的附件就是账户快照
type Client interface {
	// GetAccount 获取账户快照的原始内容
	GetAccount(ctx context.Context, username string) ([]byte, error)
}

type httpClient struct {
	client *resty.Client
}

// NewHTTPClient client 需要已经设置好账户服务的地址
func NewHTTPClient(client *resty.Client) Client {
	return &httpClient{client: client}
}

func (c *httpClient) GetAccount(ctx context.Context, username string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("username", username).
		Get("/accounts/{username}")
	if err != nil {
		return nil, fmt.Errorf("%w: username = %s, %w", errs.ErrFetchAttachment, username, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: username = %s, status = %d", errs.ErrFetchAttachment, username, resp.StatusCode())
	}
	return resp.Body(), nil
}
