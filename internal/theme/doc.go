// Package theme resolves banner themes. A theme is a GTK CSS file; the
// colours it defines with @define-color also drive the terminal host.
// User themes in $XDG_CONFIG_HOME/shout/themes override the bundled ones.
package theme
