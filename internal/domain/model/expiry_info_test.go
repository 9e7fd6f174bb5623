package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestNewExpiryInfo_UseByAfterBestBefore(t *testing.T) {
	_, err := model.NewExpiryInfo(date(2024, 12, 1), date(2024, 12, 2))
	assert.EqualError(t, err, "消費期限は賞味期限以前でなければなりません")
	assert.Equal(t, model.ErrKindInvariant, model.KindOf(err))
}

func TestNewExpiryInfo_UseByBeforeBestBefore(t *testing.T) {
	info, err := model.NewExpiryInfo(date(2024, 12, 10), date(2024, 12, 5))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 12, 10), info.EffectiveExpiryDate())
}

func TestExpiryInfo_BothNilAreEqual(t *testing.T) {
	a, err := model.NewExpiryInfo(nil, nil)
	require.NoError(t, err)
	b, err := model.NewExpiryInfo(nil, nil)
	require.NoError(t, err)
	assert.True(t, a.Equals(b))
}

func TestExpiryInfo_Equals(t *testing.T) {
	a, _ := model.NewExpiryInfo(date(2024, 12, 31), nil)
	b, _ := model.NewExpiryInfo(date(2024, 12, 31), nil)
	c, _ := model.NewExpiryInfo(date(2025, 1, 1), nil)
	d, _ := model.NewExpiryInfo(nil, date(2024, 12, 31))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
}

func TestExpiryInfo_IsExpired_TodayIsNotExpired(t *testing.T) {
	now := time.Now()

	//今日の23:59:59が期限 → まだ期限内
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	info, _ := model.NewExpiryInfo(&endOfToday, nil)
	assert.False(t, info.IsExpiredAt(now))

	//昨日が期限 → 期限切れ
	yesterday := now.AddDate(0, 0, -1)
	info, _ = model.NewExpiryInfo(&yesterday, nil)
	assert.True(t, info.IsExpiredAt(now))
}

func TestExpiryInfo_IsExpired_NoDates(t *testing.T) {
	info, _ := model.NewExpiryInfo(nil, nil)
	assert.False(t, info.IsExpired())
}

func TestExpiryInfo_IsExpired_FallsBackToUseBy(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	info, _ := model.NewExpiryInfo(nil, &yesterday)
	assert.True(t, info.IsExpiredAt(now))
}

func TestExpiryInfo_DaysUntilExpiry(t *testing.T) {
	now := time.Now()

	in3Days := now.AddDate(0, 0, 3)
	info, _ := model.NewExpiryInfo(&in3Days, nil)
	days := info.DaysUntilExpiryAt(now)
	require.NotNil(t, days)
	assert.Equal(t, 3, *days)

	//期限切れは負になる
	twoDaysAgo := now.AddDate(0, 0, -2)
	info, _ = model.NewExpiryInfo(&twoDaysAgo, nil)
	days = info.DaysUntilExpiryAt(now)
	require.NotNil(t, days)
	assert.Equal(t, -2, *days)
}

func TestExpiryInfo_DaysUntilExpiry_AcrossDSTTransition(t *testing.T) {
	//2025-03-09はNYの夏時間切替日（0時〜翌0時が23時間）
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)

	tomorrow := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	info, _ := model.NewExpiryInfo(&tomorrow, nil)
	days := info.DaysUntilExpiryAt(now)
	require.NotNil(t, days)
	assert.Equal(t, 1, *days)

	//切替日をまたぐ先の日付も暦日どおり
	nextWeek := time.Date(2025, 3, 15, 0, 0, 0, 0, loc)
	info, _ = model.NewExpiryInfo(&nextWeek, nil)
	days = info.DaysUntilExpiryAt(now)
	require.NotNil(t, days)
	assert.Equal(t, 7, *days)

	//冬時間への切替日（25時間）側も同様
	nowFall := time.Date(2025, 11, 1, 12, 0, 0, 0, loc)
	dayAfter := time.Date(2025, 11, 2, 0, 0, 0, 0, loc)
	info, _ = model.NewExpiryInfo(&dayAfter, nil)
	days = info.DaysUntilExpiryAt(nowFall)
	require.NotNil(t, days)
	assert.Equal(t, 1, *days)
}

func TestExpiryInfo_DaysUntilExpiry_NilWhenNoDates(t *testing.T) {
	info, _ := model.NewExpiryInfo(nil, nil)
	assert.Nil(t, info.DaysUntilExpiry())
}

func TestExpiryInfo_EffectiveExpiryDate_PrefersBestBefore(t *testing.T) {
	info, _ := model.NewExpiryInfo(date(2024, 12, 31), date(2024, 12, 25))
	assert.Equal(t, date(2024, 12, 31), info.EffectiveExpiryDate())

	info, _ = model.NewExpiryInfo(nil, date(2024, 12, 25))
	assert.Equal(t, date(2024, 12, 25), info.EffectiveExpiryDate())

	info, _ = model.NewExpiryInfo(nil, nil)
	assert.Nil(t, info.EffectiveExpiryDate())
}
