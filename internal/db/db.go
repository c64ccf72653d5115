package db

import (
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
	"github.com/BruksfildServices01/escala-voluntarios/internal/validators"
)

// NewDB abre a conexão no driver configurado e aplica as configurações de pool.
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    cfg.DBDriver != "sqlite",
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	log.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		mc, err := gomysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		// DATE precisa voltar como time.Time em UTC.
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mysql.New(mysql.Config{DSN: mc.FormatDSN()}), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate cria/atualiza as tabelas, normaliza turnos gravados com os
// rótulos antigos e reescreve telefones para só dígitos. Telefones que
// colidiriam no índice único ficam como estão e são logados.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	if err := db.AutoMigrate(
		&models.Area{},
		&models.Volunteer{},
		&models.VolunteerArea{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if err := db.Exec(`
        UPDATE escalas
        SET turno = 'Morning'
        WHERE turno IN ('Manhã', 'Manha', 'manhã', 'manha')
    `).Error; err != nil {
		return fmt.Errorf("failed to normalize morning shifts: %w", err)
	}

	if err := db.Exec(`
        UPDATE escalas
        SET turno = 'Night'
        WHERE turno IN ('Noite', 'noite')
    `).Error; err != nil {
		return fmt.Errorf("failed to normalize night shifts: %w", err)
	}

	conflicts, err := NormalizePhones(db)
	if err != nil {
		return err
	}
	for _, c := range conflicts {
		log.Warn("phone kept as typed: digits already used by another volunteer",
			zap.Uint("volunteer_id", c.VolunteerID),
			zap.String("phone", c.Phone),
			zap.Uint("owner_id", c.OwnerID),
		)
	}

	return nil
}

// PhoneConflict é um telefone legado cuja versão só com dígitos já pertence
// a outro voluntário.
type PhoneConflict struct {
	VolunteerID uint
	Phone       string
	Digits      string
	OwnerID     uint
}

// NormalizePhones grava cada telefone só com dígitos, como o cadastro faz
// hoje. É idempotente: uma segunda execução devolve os mesmos conflitos.
func NormalizePhones(db *gorm.DB) ([]PhoneConflict, error) {
	var conflicts []PhoneConflict

	err := db.Transaction(func(tx *gorm.DB) error {
		var vols []models.Volunteer
		if err := tx.Select("id", "telefone").Order("id ASC").Find(&vols).Error; err != nil {
			return err
		}

		owner := make(map[string]uint, len(vols))
		for _, v := range vols {
			owner[v.Phone] = v.ID
		}

		for _, v := range vols {
			digits := validators.NormalizePhone(v.Phone)
			if digits == "" || digits == v.Phone {
				continue
			}
			if id, ok := owner[digits]; ok && id != v.ID {
				conflicts = append(conflicts, PhoneConflict{
					VolunteerID: v.ID,
					Phone:       v.Phone,
					Digits:      digits,
					OwnerID:     id,
				})
				continue
			}

			if err := tx.Model(&models.Volunteer{}).
				Where("id = ?", v.ID).
				Update("telefone", digits).Error; err != nil {
				return err
			}
			delete(owner, v.Phone)
			owner[digits] = v.ID
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to normalize phones: %w", err)
	}
	return conflicts, nil
}
