package cmd

import "time"

const (
	DEF_LOCATION = "http://localhost/"
	DEF_TIMEOUT  = time.Second * 5
	DEF_CONTEXT  = "both"
)

const DESCRIPTION = `
pagekit attaches small page behaviors to server-rendered HTML: it disables
the navigation link of the current page and fades the render timestamp,
either natively (render context) or through the component scripts
(client context), and waits for their timers to settle.
`

const (
	MountDescription = `The mount command parses an HTML document, mounts the
components named by its data-mount attributes and writes
the resulting document once every pending timer has fired.

Example:
        pagekit mount --url http://localhost/about index.html
        cat index.html | pagekit mount --context client -

`
	ComponentsDescription = `The components command lists the client components
available from a components directory, or the builtin ones.

Example:
        pagekit components --components ./components

`
)
