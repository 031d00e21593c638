package config

// Project points at the checkout of the game repository that receives the
// generated files.
type Project struct {
	Root string `env:"PROJECT_ROOT,notEmpty"`
}
