package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
)

func TestNewStorageLocation_InvalidType(t *testing.T) {
	_, err := model.NewStorageLocation("CELLAR", "")
	assert.EqualError(t, err, "保管場所の区分が不正です")
}

func TestNewStorageLocation_DetailTooLong(t *testing.T) {
	_, err := model.NewStorageLocation(model.StorageTypeRefrigerated, strings.Repeat("あ", 51))
	assert.EqualError(t, err, "保管場所の詳細は50文字以内で入力してください")
}

func TestNewStorageLocation_TrimsDetail(t *testing.T) {
	l, err := model.NewStorageLocation(model.StorageTypeRefrigerated, "  野菜室  ")
	require.NoError(t, err)
	assert.Equal(t, "野菜室", l.Detail())
}

func TestStorageLocation_Equals(t *testing.T) {
	a, _ := model.NewStorageLocation(model.StorageTypeRefrigerated, "野菜室")
	b, _ := model.NewStorageLocation(model.StorageTypeRefrigerated, "野菜室")
	c, _ := model.NewStorageLocation(model.StorageTypeRefrigerated, "ドアポケット")
	d, _ := model.NewStorageLocation(model.StorageTypeFrozen, "野菜室")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
}

func TestStorageLocation_String(t *testing.T) {
	withDetail, _ := model.NewStorageLocation(model.StorageTypeRefrigerated, "野菜室")
	assert.Equal(t, "冷蔵（野菜室）", withDetail.String())

	noDetail, _ := model.NewStorageLocation(model.StorageTypeFrozen, "")
	assert.Equal(t, "冷凍", noDetail.String())

	room, _ := model.NewStorageLocation(model.StorageTypeRoomTemperature, "パントリー")
	assert.Equal(t, "常温（パントリー）", room.String())
}
