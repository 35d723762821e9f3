package discover

// DefaultIgnorePatterns is the built-in ignore table applied to every directory walk.
// Patterns use gitignore placement: no inner slash matches at any depth, a trailing
// slash matches directories only.
var DefaultIgnorePatterns = []string{
	// dependencies
	"node_modules/",
	"bower_components/",
	"jspm_packages/",
	"vendor/",
	".venv/",
	"venv/",
	"__pycache__/",
	".tox/",

	// build output
	"dist/",
	"build/",
	"out/",
	"target/",
	"coverage/",
	".next/",
	".nuxt/",
	".output/",
	".svelte-kit/",
	"*.min.js",
	"*.min.css",
	"*.map",
	"*.pyc",
	"*.tsbuildinfo",

	// lock files
	"package-lock.json",
	"npm-shrinkwrap.json",
	"pnpm-lock.yaml",
	"*.lock",
	"go.sum",

	// version control
	".git/",
	".svn/",
	".hg/",

	// documentation and licensing
	"LICENSE",
	"LICENSE.*",
	"LICENCE",
	"CHANGELOG*",
	"CONTRIBUTING*",
	"CODE_OF_CONDUCT*",
	"AUTHORS",
	"NOTICE",

	// operating system
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",

	// editors
	".idea/",
	".vscode/",
	"*.swp",
	"*.swo",
	"*~",

	// temporary and cache
	"tmp/",
	"temp/",
	".cache/",
	".parcel-cache/",
	".turbo/",
	".pytest_cache/",
	".mypy_cache/",
	".eslintcache",
	"*.tmp",
	"*.log",
}
