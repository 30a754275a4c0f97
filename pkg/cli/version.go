package cli

// Version is set at build time with -ldflags "-X github.com/Fepozopo/grade/pkg/cli.Version=x.y.z".
var Version = "0.1.0"
