package ports

// Logger é o log estruturado usado por services e infraestrutura.
// args são pares chave/valor no estilo slog ("post_id", id, "error", err).
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	// With retorna um logger que inclui args em todas as entradas (ex.: "component", "bus")
	With(args ...any) Logger
}
