package state

import (
	"context"

	"finboard/internal/notify"
)

type action int

const (
	actionCreate action = iota
	actionUpdate
	actionDelete
)

// successMessages holds the pt-BR notices per collection and action.
var successMessages = map[string][3]string{
	"categories":  {"Categoria criada com sucesso", "Categoria atualizada com sucesso", "Categoria excluída com sucesso"},
	"earnings":    {"Receita criada com sucesso", "Receita atualizada com sucesso", "Receita excluída com sucesso"},
	"expenses":    {"Despesa criada com sucesso", "Despesa atualizada com sucesso", "Despesa excluída com sucesso"},
	"investments": {"Investimento criado com sucesso", "Investimento atualizado com sucesso", "Investimento excluído com sucesso"},
	"objectives":  {"Objetivo criado com sucesso", "Objetivo atualizado com sucesso", "Objetivo excluído com sucesso"},
}

func (s *Store) succeeded(ctx context.Context, collection string, a action) {
	msgs, ok := successMessages[collection]
	if !ok {
		return
	}
	s.notifier.Notify(ctx, notify.New(s.userID.String(), notify.LevelSuccess, msgs[a]))
}
