package scheduling

import "github.com/dkomnin/AVB-SchedulingService/internal/domain"

// Policy параметры планирования
// Значения берутся из конфигурации сервиса; нулевые поля заменяются
// дефолтами через Normalize
type Policy struct {
	// BufferMinutes минимальный перерыв между двумя разными занятиями
	// одного инструктора в один день
	BufferMinutes int

	// RotationWindowMinutes половина симметричного окна (±), в котором
	// занятия считаются одновременными при подсчете загрузки транспорта
	RotationWindowMinutes int

	// DefaultParticipantWeightKg вес участника, если он не указан в брони
	DefaultParticipantWeightKg float64

	// DefaultInstructorWeightKg вес инструктора, если он не указан в анкете
	DefaultInstructorWeightKg float64

	// DriverWeightKg фиксированный вес водителя транспорта
	DriverWeightKg float64
}

// DefaultPolicy возвращает политику с reference-значениями
func DefaultPolicy() Policy {
	return Policy{
		BufferMinutes:              domain.DefaultBufferMinutes,
		RotationWindowMinutes:      domain.DefaultRotationWindowMinutes,
		DefaultParticipantWeightKg: domain.DefaultParticipantWeightKg,
		DefaultInstructorWeightKg:  domain.DefaultInstructorWeightKg,
		DriverWeightKg:             domain.DefaultDriverWeightKg,
	}
}

// Normalize заменяет незаполненные поля значениями по умолчанию
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.BufferMinutes <= 0 {
		p.BufferMinutes = def.BufferMinutes
	}
	if p.RotationWindowMinutes <= 0 {
		p.RotationWindowMinutes = def.RotationWindowMinutes
	}
	if p.DefaultParticipantWeightKg <= 0 {
		p.DefaultParticipantWeightKg = def.DefaultParticipantWeightKg
	}
	if p.DefaultInstructorWeightKg <= 0 {
		p.DefaultInstructorWeightKg = def.DefaultInstructorWeightKg
	}
	if p.DriverWeightKg <= 0 {
		p.DriverWeightKg = def.DriverWeightKg
	}
	return p
}
