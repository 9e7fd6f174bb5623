package model

import (
	"strings"
	"unicode/utf8"
)

// StorageTypeは保管場所の区分。
type StorageType string

const (
	StorageTypeRefrigerated    StorageType = "REFRIGERATED"
	StorageTypeFrozen          StorageType = "FROZEN"
	StorageTypeRoomTemperature StorageType = "ROOM_TEMPERATURE"
)

func ParseStorageType(value string) (StorageType, error) {
	switch StorageType(value) {
	case StorageTypeRefrigerated, StorageTypeFrozen, StorageTypeRoomTemperature:
		return StorageType(value), nil
	default:
		return "", NewValidationError("保管場所の区分が不正です")
	}
}

// Labelは日本語の表示名。
func (t StorageType) Label() string {
	switch t {
	case StorageTypeRefrigerated:
		return "冷蔵"
	case StorageTypeFrozen:
		return "冷凍"
	case StorageTypeRoomTemperature:
		return "常温"
	default:
		return string(t)
	}
}

const storageDetailMaxLength = 50

// StorageLocationは保管場所（区分 + 任意の詳細）。
type StorageLocation struct {
	storageType StorageType
	detail      string
}

func NewStorageLocation(storageType StorageType, detail string) (StorageLocation, error) {
	if _, err := ParseStorageType(string(storageType)); err != nil {
		return StorageLocation{}, err
	}
	d := strings.TrimSpace(detail)
	if utf8.RuneCountInString(d) > storageDetailMaxLength {
		return StorageLocation{}, NewValidationError("保管場所の詳細は50文字以内で入力してください")
	}
	return StorageLocation{storageType: storageType, detail: d}, nil
}

func (l StorageLocation) Type() StorageType { return l.storageType }

func (l StorageLocation) Detail() string { return l.detail }

func (l StorageLocation) Equals(other StorageLocation) bool {
	return l.storageType == other.storageType && l.detail == other.detail
}

// Stringは「冷蔵（野菜室）」のように表示名を返す。
func (l StorageLocation) String() string {
	if l.detail == "" {
		return l.storageType.Label()
	}
	return l.storageType.Label() + "（" + l.detail + "）"
}
