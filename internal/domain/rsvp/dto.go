package rsvp

import "encoding/json"

// View is what the confirmation page renders.
type View struct {
	State           State           `json:"state"`
	Failure         Failure         `json:"failure,omitempty"`
	Primary         string          `json:"nome"`
	PrimaryError    string          `json:"erro_nome,omitempty"`
	Companions      GuestList       `json:"acompanhantes"`
	CanAddCompanion bool            `json:"pode_adicionar"`
	SubmitDisabled  bool            `json:"envio_desabilitado"`
	Loading         bool            `json:"carregando"`
	Message         string          `json:"mensagem,omitempty"`
	Focus           string          `json:"foco,omitempty"`
	Announcement    string          `json:"anuncio,omitempty"`
	Confirmed       []string        `json:"confirmados,omitempty"`
	GiftSuggestions json.RawMessage `json:"sugestoes_presentes,omitempty"`
	Confetti        bool            `json:"confete"`
	HintOpen        bool            `json:"dica_aberta"`
}

// View snapshots the form. The returned value shares nothing with f.
func (f *Form) View() View {
	companions := f.Companions.Clone()
	if companions == nil {
		companions = GuestList{}
	}
	var confirmed []string
	if f.Confirmed != nil {
		confirmed = append([]string(nil), f.Confirmed...)
	}
	return View{
		State:           f.State,
		Failure:         f.Failure,
		Primary:         f.Primary,
		PrimaryError:    f.PrimaryError,
		Companions:      companions,
		CanAddCompanion: f.CanAddCompanion() && f.State != StateSuccess,
		SubmitDisabled:  f.submitting,
		Loading:         f.Loading,
		Message:         f.Message,
		Focus:           f.Focus,
		Announcement:    f.Announcement,
		Confirmed:       confirmed,
		GiftSuggestions: append(json.RawMessage(nil), f.GiftSuggestions...),
		Confetti:        f.Confetti,
		HintOpen:        f.HintOpen,
	}
}

// SetNameRequest edits the primary name or a companion.
type SetNameRequest struct {
	Value string `json:"value" binding:"max=120"`
}
