// Package files maps resolved catalog handles to concrete asset files.
//
// Every category has a fixed naming rule:
//
//	themes     <themesDir>/<handle>.css, then <customThemesDir>/<handle>.css
//	languages  <languagesDir>/prism-<handle>.min.js
//	plugins    <pluginsDir>/<handle>/prism-<handle>.min.js
//	           <pluginsDir>/<handle>/prism-<handle>.css unless the plugin has noCSS
//
// Languages and plugins are expanded through their requirements first.
// Files are located with a filesystem.Finder, so a missing directory or
// file only drops that entry. Paths found under a registered alias root are
// reported in "@alias/..." form.
package files
