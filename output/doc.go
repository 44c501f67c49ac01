// Package output prints styled, user-facing terminal messages.
//
// # Usage
//
//	output.Check(result)                // [CHECK] CMakeLists.txt => Ok
//	output.Success("Setup succeeded: Sandbox")
//	output.Info("Next steps:")
//	output.Step("GenerateProjectFiles.bat")
//	output.Error("Failed setup Sandbox: already set up, aborting")
//
// Verbose only prints after SetVerbose(true). Diagnostics that are not meant
// for the user go through internal/logging instead.
//
// # Styling
//
//   - Success: green bold
//   - Error: red bold
//   - Warn: yellow
//   - Info: cyan
//   - Step: indented gray
//   - Check: status colored by outcome
package output
