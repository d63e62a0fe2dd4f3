package usecases

import "errors"

// Taxonomia de erros do fluxo de submissão. Os handlers HTTP traduzem cada
// sentinela para o status code correspondente via errors.Is.
var (
	// ErrNotFound indica que o recurso pedido não existe.
	ErrNotFound = errors.New("resource not found")

	// ErrAssessmentNotFound indica que o id não referencia nenhuma avaliação.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrAlreadyCompleted indica que a avaliação já foi concluída, seja no
	// pré-check do validador, seja detectado pela escrita condicional quando
	// duas submissões correm pela mesma avaliação.
	ErrAlreadyCompleted = errors.New("assessment already completed")

	// ErrNotAuthorized indica que o chamador não é dono da avaliação.
	ErrNotAuthorized = errors.New("caller does not own this assessment")

	// ErrInvalidSubmission indica payload malformado (respostas vazias,
	// question_id inválido ou score não numérico).
	ErrInvalidSubmission = errors.New("invalid submission payload")

	// ErrStorage indica falha de armazenamento. As escritas do fluxo são
	// idempotentes ou condicionais, então o retry do cliente é seguro.
	ErrStorage = errors.New("storage failure")

	// ErrReportBuild indica falha na montagem do relatório. Nunca falha a
	// submissão: o relatório é dado derivado e é regenerado na leitura.
	ErrReportBuild = errors.New("report build failure")

	// ErrAssessmentNotCompleted indica leitura de relatório de uma avaliação
	// ainda não concluída.
	ErrAssessmentNotCompleted = errors.New("assessment not completed yet")
)
