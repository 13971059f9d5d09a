package repository

import "github.com/dmreyes/repuestos-api/internal/domain/entity"

// SettingRepository puerto de persistencia para ajustes clave/valor.
type SettingRepository interface {
	Get(key string) (*entity.Setting, error)
	Upsert(setting *entity.Setting) error
}
