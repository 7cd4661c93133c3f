package policy

// Default is the built-in endpoint table. Reads stay quiet on success so
// list refreshes and the configuration fetch do not toast on every poll;
// mutations notify on both outcomes.
func Default() *Table {
	quietReads := Decision{ShowSuccess: false, ShowError: true}
	loud := Decision{ShowSuccess: true, ShowError: true}

	return New([]Rule{
		{
			Pattern:  "/configurations",
			Methods:  map[string]Decision{"GET": quietReads},
			Fallback: &loud,
		},
		{Pattern: "/configurations/device-types", Decision: &quietReads},
		{Pattern: "/configurations/panel-types", Decision: &quietReads},
		{
			Pattern: "/projects",
			Methods: map[string]Decision{"GET": quietReads, "POST": loud},
		},
		{
			Pattern: "/projects/:id",
			Methods: map[string]Decision{"GET": quietReads, "PATCH": loud, "DELETE": loud},
		},
		{Pattern: "/projects/:id/clone", Decision: &loud},
		{
			Pattern: "/panels",
			Methods: map[string]Decision{"GET": quietReads},
		},
		{
			Pattern: "/panels/:id",
			Methods: map[string]Decision{"GET": quietReads},
		},
	})
}
