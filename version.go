package remylang

// Version is the language/runtime version reported by the CLI.
const Version = "0.1.0"
