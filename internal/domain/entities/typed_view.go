package entities

import (
	"strings"

	"github.com/tidwall/pretty"
)

const typedViewHeader = `// Auto-generated Firebase app configuration types
export interface FirebaseAppConfig {
  app?: {
    name?: string;
    description?: string;
    version?: string;
    buildNumber?: string;
  };
  firebase?: {
    web?: {
      apiKey?: string;
      appId?: string;
      messagingSenderId?: string;
      projectId?: string;
      authDomain?: string;
      storageBucket?: string;
      measurementId?: string;
    };
    android?: {
      apiKey?: string;
      appId?: string;
      messagingSenderId?: string;
      projectId?: string;
      storageBucket?: string;
    };
    ios?: {
      apiKey?: string;
      appId?: string;
      messagingSenderId?: string;
      projectId?: string;
      storageBucket?: string;
      iosBundleId?: string;
    };
  };
  project?: {
    name?: string;
    description?: string;
    org_domain?: string;
    created_at?: string;
  };
  assets?: any;
  features?: any;
  api?: any;
  ui?: any;
  localization?: any;
}

// Import the configuration from assets/config/app_config.json
export const appConfig: FirebaseAppConfig = `

// RenderTypedView mirrors a merged configuration document as a TypeScript module.
func RenderTypedView(doc []byte) []byte {
	body := strings.TrimRight(string(pretty.PrettyOptions(doc, documentFormat)), "\n")

	var builder strings.Builder
	builder.WriteString(typedViewHeader)
	builder.WriteString(body)
	builder.WriteString(";\n")
	return []byte(builder.String())
}
