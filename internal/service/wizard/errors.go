package wizard

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrSessionNotFound = errors.New("wizard: session not found")

	// ErrStepIncomplete возвращается при попытке перейти вперед с незаполненным шагом
	ErrStepIncomplete = errors.New("wizard: current step is incomplete")

	// ErrNotAtReview возвращается при попытке отправки не с финального шага
	ErrNotAtReview = errors.New("wizard: submission is only allowed from the review step")

	// ErrSubmitInProgress возвращается при повторной отправке, пока первая не завершилась
	ErrSubmitInProgress = errors.New("wizard: submission already in progress")

	// ErrAlreadyDone возвращается для операций над завершенным мастером
	ErrAlreadyDone = errors.New("wizard: booking already completed")

	// ErrNoActiveDialog возвращается, когда действие диалога пришло без открытого диалога
	ErrNoActiveDialog = errors.New("wizard: no active dialog")

	// ErrUnknownDialogAction возвращается при неизвестном действии для открытого диалога
	ErrUnknownDialogAction = errors.New("wizard: unknown dialog action")

	// ErrSelectionIncomplete возвращается, когда цепочка категория/точка/дата
	// еще не заполнена для загрузки слотов
	ErrSelectionIncomplete = errors.New("wizard: category, service point and date must be selected first")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("wizard: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("wizard: internal error")
)
