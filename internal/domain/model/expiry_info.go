package model

import "time"

// ExpiryInfoは期限情報。賞味期限（bestBefore）と消費期限（useBy）、どちらも任意。
// 両方ある場合、消費期限は賞味期限以前でなければならない。
type ExpiryInfo struct {
	bestBeforeDate *time.Time
	useByDate      *time.Time
}

func NewExpiryInfo(bestBeforeDate, useByDate *time.Time) (ExpiryInfo, error) {
	if bestBeforeDate != nil && useByDate != nil && useByDate.After(*bestBeforeDate) {
		return ExpiryInfo{}, NewInvariantError("消費期限は賞味期限以前でなければなりません")
	}
	return ExpiryInfo{bestBeforeDate: bestBeforeDate, useByDate: useByDate}, nil
}

func (e ExpiryInfo) BestBeforeDate() *time.Time { return e.bestBeforeDate }

func (e ExpiryInfo) UseByDate() *time.Time { return e.useByDate }

// EffectiveExpiryDateは賞味期限を優先した実効期限。どちらも無ければnil。
func (e ExpiryInfo) EffectiveExpiryDate() *time.Time {
	if e.bestBeforeDate != nil {
		return e.bestBeforeDate
	}
	return e.useByDate
}

// IsExpiredは暦日ベースの期限切れ判定。当日はまだ期限内。
func (e ExpiryInfo) IsExpired() bool {
	return e.IsExpiredAt(time.Now())
}

func (e ExpiryInfo) IsExpiredAt(now time.Time) bool {
	d := e.EffectiveExpiryDate()
	if d == nil {
		return false
	}
	return startOfDay(*d).Before(startOfDay(now))
}

// DaysUntilExpiryは実効期限までの日数（符号付き）。期限が無ければnil。
func (e ExpiryInfo) DaysUntilExpiry() *int {
	return e.DaysUntilExpiryAt(time.Now())
}

func (e ExpiryInfo) DaysUntilExpiryAt(now time.Time) *int {
	d := e.EffectiveExpiryDate()
	if d == nil {
		return nil
	}
	//暦日差。UTCの0時に固定してから引く（夏時間で23h/25hになる日があっても日数はずれない）
	days := int(utcDate(*d).Sub(utcDate(now)).Hours() / 24)
	return &days
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Equalsは構造的等価。両方nil同士も等しい。
func (e ExpiryInfo) Equals(other ExpiryInfo) bool {
	return datesEqual(e.bestBeforeDate, other.bestBeforeDate) &&
		datesEqual(e.useByDate, other.useByDate)
}

func datesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return startOfDay(*a).Equal(startOfDay(*b))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
