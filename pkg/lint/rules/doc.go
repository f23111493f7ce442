// Package rules implements the built-in checks for gopystyle.
//
// Every rule carries a pycodestyle-style code and a readable name. Either
// form works anywhere a rule is referenced, in config files and on the
// command line alike:
//
//	W291  trailing-whitespace                  lines must not end in spaces or tabs
//	E111  indentation                          indent must be a multiple of the configured size
//	E225  missing-whitespace-around-operator   binary operators take a space on both sides
//	E501  line-too-long                        lines stay under the configured maximum
//	I100  import-order                         imports sorted alphabetically
//	N801  class-naming                         classes use CapWords
//	N802  function-naming                      functions use lower_snake_case
//
// The letter prefixes sort findings into the families pycodestyle users
// already know: E for style errors, W for warnings, I for import order,
// and N for naming. pycodestyle codes that fold into a broader rule here
// (W293, E114, E226) are registered as aliases, so configuration written
// for pycodestyle or flake8 keeps resolving. See RegisterCompatAliases.
//
// Packs bundle rule settings into named presets: core for everyday
// linting, strict for CI gates, relaxed for whitespace cleanup, and
// naming for convention-only runs. PackByName and Packs expose them to
// callers.
//
// RegisterAll installs every rule into a registry. Importing this package
// for side effects does the same against lint.DefaultRegistry, aliases
// included.
package rules
