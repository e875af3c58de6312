package utils

// Version is the console version, overridden at link time by releases.
var Version = "0.1.0"
