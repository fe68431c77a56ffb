package domain

// Step идентификатор шага мастера бронирования
type Step string

const (
	StepCategorySelection Step = "category-selection"
	StepCityServicePoint  Step = "city-service-point"
	StepDateTime          Step = "date-time"
	StepClientInfo        Step = "client-info"
	StepCarType           Step = "car-type"
	StepReview            Step = "review"
)

// StepOrder фиксированный порядок шагов мастера
// Индексы в WizardState всегда ссылаются на этот срез
var StepOrder = []Step{
	StepCategorySelection,
	StepCityServicePoint,
	StepDateTime,
	StepClientInfo,
	StepCarType,
	StepReview,
}

// StepCount возвращает количество шагов мастера
func StepCount() int {
	return len(StepOrder)
}

// StepAt возвращает шаг по индексу
// Для индекса вне диапазона возвращает пустой Step
func StepAt(index int) Step {
	if index < 0 || index >= len(StepOrder) {
		return ""
	}
	return StepOrder[index]
}

// StepIndex возвращает индекс шага в StepOrder или -1, если шаг неизвестен
func StepIndex(step Step) int {
	for i, s := range StepOrder {
		if s == step {
			return i
		}
	}
	return -1
}

// ReviewStepIndex индекс финального шага подтверждения
func ReviewStepIndex() int {
	return len(StepOrder) - 1
}
