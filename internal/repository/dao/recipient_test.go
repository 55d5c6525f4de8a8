//go:build e2e

package dao

import (
	"context"
	"sync"
	"testing"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/errs"
	testioc "gitee.com/flycash/notification-scheduler/internal/test/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func TestRecipientDAOSuite(t *testing.T) {
	suite.Run(t, new(RecipientDAOTestSuite))
}

type RecipientDAOTestSuite struct {
	suite.Suite
	db  *gorm.DB
	dao RecipientDAO
}

func (s *RecipientDAOTestSuite) SetupSuite() {
	s.db = testioc.InitDB(&Recipient{}, &RecipientNotification{})
	s.dao = NewRecipientDAO(s.db)
}

func (s *RecipientDAOTestSuite) TearDownTest() {
	testioc.TruncateTables(s.db, "recipients", "recipient_notifications")
}

func (s *RecipientDAOTestSuite) day(d string) int64 {
	t, err := time.Parse(time.DateOnly, d)
	s.Require().NoError(err)
	return t.UnixMilli()
}

func (s *RecipientDAOTestSuite) create(id uint64, username string, ns ...RecipientNotification) {
	err := s.dao.Create(context.Background(), RecipientWithNotifications{
		Recipient:     Recipient{ID: id, Username: username, Email: username + "@example.com"},
		Notifications: ns,
	})
	s.Require().NoError(err)
}

func (s *RecipientDAOTestSuite) TestCreate() {
	t := s.T()
	ctx := context.Background()
	s.create(1, "alice", RecipientNotification{NotificationType: "REMIND", Active: true, Frequency: 30})

	res, err := s.dao.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Recipient.ID)
	assert.Equal(t, "alice@example.com", res.Recipient.Email)
	assert.NotZero(t, res.Recipient.Ctime)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "REMIND", res.Notifications[0].NotificationType)
	assert.Equal(t, int64(0), res.Notifications[0].LastNotified)

	err = s.dao.Create(ctx, RecipientWithNotifications{
		Recipient: Recipient{ID: 2, Username: "alice", Email: "other@example.com"},
	})
	assert.ErrorIs(t, err, errs.ErrRecipientDuplicate)

	_, err = s.dao.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, errs.ErrRecipientNotFound)
}

func (s *RecipientDAOTestSuite) TestSave() {
	t := s.T()
	ctx := context.Background()
	s.create(1, "alice", RecipientNotification{NotificationType: "REMIND", Active: true, Frequency: 30})

	saved, err := s.dao.Save(ctx, RecipientWithNotifications{
		Recipient: Recipient{ID: 100, Username: "alice", Email: "new@example.com"},
		Notifications: []RecipientNotification{
			{NotificationType: "BACKUP", Active: true, Frequency: 7},
		},
	})
	require.NoError(t, err)
	// 已经存在的接收者保留原来的 ID
	assert.Equal(t, uint64(1), saved.Recipient.ID)
	assert.Equal(t, "new@example.com", saved.Recipient.Email)
	require.Len(t, saved.Notifications, 1)
	assert.Equal(t, "BACKUP", saved.Notifications[0].NotificationType)

	saved, err = s.dao.Save(ctx, RecipientWithNotifications{
		Recipient: Recipient{ID: 200, Username: "bob", Email: "bob@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(200), saved.Recipient.ID)
	assert.Empty(t, saved.Notifications)
}

func (s *RecipientDAOTestSuite) TestFindReady() {
	t := s.T()
	ctx := context.Background()
	asOf := s.day("2024-01-08")

	s.create(1, "alice",
		RecipientNotification{NotificationType: "BACKUP", Active: true, Frequency: 7},
		RecipientNotification{NotificationType: "REMIND", Active: false, Frequency: 30})
	// 刚好到期
	s.create(2, "bob", RecipientNotification{NotificationType: "BACKUP", Active: true, Frequency: 7, LastNotified: s.day("2024-01-01")})
	// 还差一天
	s.create(3, "carol", RecipientNotification{NotificationType: "BACKUP", Active: true, Frequency: 7, LastNotified: s.day("2024-01-02")})
	// 未激活
	s.create(4, "dave", RecipientNotification{NotificationType: "BACKUP", Active: false, Frequency: 7})
	// 只有提醒
	s.create(5, "erin", RecipientNotification{NotificationType: "REMIND", Active: true, Frequency: 30})
	s.create(6, "frank", RecipientNotification{NotificationType: "BACKUP", Active: true, Frequency: 90, LastNotified: s.day("2023-09-01")})

	first, err := s.dao.FindReady(ctx, "BACKUP", asOf, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "alice", first[0].Recipient.Username)
	// 加载完整的接收者，包括其它类型
	assert.Len(t, first[0].Notifications, 2)
	assert.Equal(t, "bob", first[1].Recipient.Username)

	second, err := s.dao.FindReady(ctx, "BACKUP", asOf, first[1].Recipient.ID, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "frank", second[0].Recipient.Username)

	remind, err := s.dao.FindReady(ctx, "REMIND", asOf, 0, 10)
	require.NoError(t, err)
	require.Len(t, remind, 1)
	assert.Equal(t, "erin", remind[0].Recipient.Username)
}

func (s *RecipientDAOTestSuite) TestMarkNotified() {
	t := s.T()
	ctx := context.Background()
	s.create(1, "bob",
		RecipientNotification{NotificationType: "BACKUP", Active: true, Frequency: 7, LastNotified: s.day("2024-01-01")},
		RecipientNotification{NotificationType: "REMIND", Active: false, Frequency: 30})

	row, err := s.dao.MarkNotified(ctx, "bob", "BACKUP", s.day("2024-01-08"))
	require.NoError(t, err)
	assert.Equal(t, s.day("2024-01-08"), row.LastNotified)

	// 不会回退
	row, err = s.dao.MarkNotified(ctx, "bob", "BACKUP", s.day("2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, s.day("2024-01-08"), row.LastNotified)

	_, err = s.dao.MarkNotified(ctx, "bob", "REMIND", s.day("2024-01-08"))
	assert.ErrorIs(t, err, errs.ErrNotificationInactive)

	_, err = s.dao.MarkNotified(ctx, "nobody", "BACKUP", s.day("2024-01-08"))
	assert.ErrorIs(t, err, errs.ErrRecipientNotFound)

	// 提醒的设置没有被改动
	res, err := s.dao.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	for _, n := range res.Notifications {
		if n.NotificationType == "REMIND" {
			assert.Equal(t, int64(0), n.LastNotified)
			assert.False(t, n.Active)
		}
	}
}

func (s *RecipientDAOTestSuite) TestMarkNotified_ConcurrentTypes() {
	t := s.T()
	ctx := context.Background()
	s.create(1, "bob",
		RecipientNotification{NotificationType: "BACKUP", Active: true, Frequency: 7},
		RecipientNotification{NotificationType: "REMIND", Active: true, Frequency: 30})

	var wg sync.WaitGroup
	for _, typ := range []string{"BACKUP", "REMIND"} {
		wg.Add(1)
		go func(typ string) {
			defer wg.Done()
			_, err := s.dao.MarkNotified(ctx, "bob", typ, s.day("2024-01-08"))
			assert.NoError(t, err)
		}(typ)
	}
	wg.Wait()

	res, err := s.dao.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, res.Notifications, 2)
	for _, n := range res.Notifications {
		assert.Equal(t, s.day("2024-01-08"), n.LastNotified, n.NotificationType)
	}
}
