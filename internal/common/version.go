package common

// Version is the client version reported by the CLI and the API.
const Version = "1.0.0"
