package photo

// ViewModel is what the photo page renders.
type ViewModel struct {
	View           View    `json:"view"`
	Generation     uint64  `json:"geracao"`
	FileName       string  `json:"arquivo,omitempty"`
	Preview        string  `json:"preview,omitempty"`
	OriginalSize   string  `json:"tamanho_original,omitempty"`
	CompressedSize string  `json:"tamanho_comprimido,omitempty"`
	Compressing    bool    `json:"comprimindo"`
	Ready          bool    `json:"pronta"`
	Width          int     `json:"largura,omitempty"`
	Height         int     `json:"altura,omitempty"`
	Quality        float64 `json:"qualidade,omitempty"`
	CompressError  string  `json:"erro_compressao,omitempty"`
	ErrorMessage   string  `json:"erro,omitempty"`
	Loading        bool    `json:"carregando"`
	SendDisabled   bool    `json:"envio_desabilitado"`
}

// ViewModel snapshots the state for rendering.
func (s *State) ViewModel() ViewModel {
	vm := ViewModel{
		View:           s.View,
		Generation:     s.Generation,
		Preview:        s.Preview,
		OriginalSize:   s.OriginalSize,
		CompressedSize: s.CompressedSize,
		Compressing:    s.Compressing,
		Ready:          s.Ready(),
		CompressError:  s.CompressError,
		ErrorMessage:   s.ErrorMessage,
		Loading:        s.Loading,
		SendDisabled:   s.sending || !s.Ready(),
	}
	if s.File != nil {
		vm.FileName = s.File.Name
	}
	if s.Compressed != nil {
		vm.Width = s.Compressed.Width
		vm.Height = s.Compressed.Height
		vm.Quality = s.Compressed.Quality
	}
	return vm
}
