package model

import (
	"encoding/gob"
	"io"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
)

// SaveModelToWriter はモデルの状態をgob形式でio.Writerに保存する
//
// パラメータ:
//   - model: 保存する値（エクスポートされたフィールドのみ保存される）
//   - w: 保存先のWriter
//
// 戻り値:
//   - error: 保存に失敗した場合のエラー
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルの状態を読み込む
//
// パラメータ:
//   - model: 読み込み先（ポインタ）
//   - r: 読み込み元のReader
//
// 戻り値:
//   - error: 読み込みに失敗した場合のエラー
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
