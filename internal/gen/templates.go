package gen

import "text/template"

var bannerTemplate = template.Must(template.New("banner").Parse(
	`// Code generated by deriv-generator{{if .}} from {{.}}{{end}}. DO NOT EDIT.

`))

var dispatchTemplate = template.Must(template.New("dispatch").Parse(
	`const {{.Field}} {{.Name}}({{.Params}}) {
  if (method == DIFF_DEFAULT) {
    method = {{.DefaultVar}};
  }
  if (outloc == CELL_DEFAULT) {
    outloc = f.getLocation();
  }
  switch (method) {
{{- range .Cases}}
  case {{.Method}}:
{{- if $.Staggered}}
    if (outloc == {{$.StagLoc}}) {
{{- if $.Flux}}
      return {{.On}}(interp_to(v, CELL_CENTRE), f);
    } else {
      return interp_to({{.Off}}(v, interp_to(f, CELL_CENTRE)), outloc);
    }
{{- else}}
      return {{.On}}(interp_to(f, CELL_CENTRE));
    } else {
      return interp_to({{.Off}}(f), outloc);
    }
{{- end}}
{{- else if $.Flux}}
    if (v.getLocation() == f.getLocation()) {
      return interp_to({{.Norm}}(v, f), outloc);
    } else {
      return interp_to({{.Norm}}(interp_to(v, CELL_CENTRE), interp_to(f, CELL_CENTRE)), outloc);
    }
{{- else}}
    return interp_to({{.Norm}}(f), outloc);
{{- end}}
    break;
{{- end}}
  default:
    throw BoutException("{{.Unknown}}", method);
  }
}

`))

var wrapperTemplate = template.Must(template.New("wrapper").Parse(
	`const {{.Field}} {{.Mesh}}::{{.Name}}({{.Params}}) {
{{- if .DeclareSelectors}}
  CELL_LOC outloc = CELL_DEFAULT;
  DIFF_METHOD method = DIFF_DEFAULT;
{{- end}}
  if (outloc == CELL_DEFAULT) {
    outloc = f.getLocation();
  }
{{- if .Flux}}
  if (outloc != f.getLocation()) {
    throw BoutException("{{.Mismatch}}");
  }
{{- end}}
  if ((outloc == {{.StagLoc}}) != (f.getLocation() == {{.StagLoc}})) {
    // moving onto or off the staggered grid
    return {{.Stag}}({{.Args}}, outloc, method);
  } else {
    return {{.NonStag}}({{.Args}}, outloc, method);
  }
}

`))

var headerTemplate = template.Must(template.New("header").Parse(
	`  virtual const {{.Field}} {{.Name}}({{.Params}}){{if not .Shim}} override{{end}};
{{- if .Shim}}
  virtual const {{.Field}} {{.Name}}({{.ShimParams}}) override {
    return {{.Name}}({{.ShimArgs}});
  }
{{- end}}
`))

var initTemplate = template.Must(template.New("init").Parse(
	`{{range .Declarations}}DIFF_METHOD {{.}};
{{end}}
void {{.Mesh}}::derivs_init(Options * option) {
  std::string name;
  Options * dirOption;
{{- range .Directions}}
  output.write("{{.Banner}}");
  dirOption = option->getSection("{{.Section}}");
{{- range .Selections}}

  // Setting derivatives for {{.Section}} and {{.Label}}
{{- if .Preseed}}
  name = "{{.Preseed}}";
{{- end}}
{{- $fallback := .Fallback}}
{{- range .Keys}}
  {{.Lead}} (dirOption->isSet("{{.Key}}")) {
    dirOption->get("{{.Key}}", name, "{{$fallback}}");
{{- end}}
  } else {
    name = "{{.Fallback}}";
  }
{{- $variable := .Variable}}
{{- range .Options}}
  {{.Lead}} (strcasecmp(name.c_str(), "{{.Scheme}}") == 0) {
    {{$variable}} = {{.Method}};
    output.write("{{.Log}}");
{{- end}}
  } else {
    throw BoutException("{{.Unknown}}", name.c_str());
  }
{{- end}}
{{- end}}
}
`))
